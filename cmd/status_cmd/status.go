package status_cmd

import (
	"archivuelo/cmd/cmd_env"
	"archivuelo/database/model"
	"archivuelo/file_io"
	L "archivuelo/logger"
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

func Execute(ctx context.Context, args []string) error {
	statusCmd := flag.NewFlagSet("status", flag.ExitOnError)
	flags := cmd_env.RegisterCommonFlags(statusCmd)
	list := statusCmd.String("list", "", "List files: all, pending, imported, verify-failed")
	target := statusCmd.String("target", "", "Also summarize the files present in this directory")
	statusCmd.Usage = func() {
		PrintUsage()
	}
	if err := statusCmd.Parse(args); err != nil {
		return err
	}
	if err := flags.Apply(); err != nil {
		return err
	}

	env, err := cmd_env.Open(ctx, flags, false)
	if err != nil {
		return err
	}
	defer env.Close(ctx)

	summary, err := env.Repo.Summary(ctx)
	if err != nil {
		return err
	}
	L.Printf("%s", FormatSummary(summary))

	if *target != "" {
		info, err := file_io.ComputeFilesInfo(ctx, *target)
		if err != nil {
			return fmt.Errorf("could not read target %s: %w", *target, err)
		}
		L.Printf("Target %s: %d files, %s\n", *target, info.TotalFileCount, humanize.Bytes(info.SizeInBytes))
	}

	if *list != "" {
		status, err := parseListStatus(*list)
		if err != nil {
			return err
		}
		files, err := env.Repo.List(ctx, status)
		if err != nil {
			return err
		}
		for _, f := range files {
			L.Printf("%s\n", FormatRow(f))
		}
	}
	return nil
}

func parseListStatus(s string) (model.ListStatus, error) {
	switch model.ListStatus(strings.ReplaceAll(strings.ToLower(s), "-", "_")) {
	case model.LIST_ALL:
		return model.LIST_ALL, nil
	case model.LIST_PENDING:
		return model.LIST_PENDING, nil
	case model.LIST_IMPORTED:
		return model.LIST_IMPORTED, nil
	case model.LIST_VERIFY_FAILED:
		return model.LIST_VERIFY_FAILED, nil
	default:
		return "", fmt.Errorf("unknown list filter: %s. For more information, check 'archivuelo help status'", s)
	}
}

func FormatSummary(s *model.MediaFileSummary) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Tracked:        %d files (%s)\n", s.Total, humanize.Bytes(uint64(s.TotalSize))))
	sb.WriteString(fmt.Sprintf("Imported:       %d files (%s)\n", s.Imported, humanize.Bytes(uint64(s.ImportedSize))))
	sb.WriteString(fmt.Sprintf("Pending:        %d files\n", s.Pending))
	sb.WriteString(fmt.Sprintf("Verified:       %d files\n", s.Verified))
	sb.WriteString(fmt.Sprintf("Verify failed:  %d files\n", s.VerifyFailed))
	last := "never"
	if !s.LastImportedAt.IsZero() {
		last = humanize.Time(s.LastImportedAt)
	}
	sb.WriteString(fmt.Sprintf("Last import:    %s\n", last))
	return sb.String()
}

func FormatRow(f model.MediaFile) string {
	return fmt.Sprintf("%-9s %-9s %10s  %s",
		model.StatusString(f.StatusImported),
		model.StatusString(f.StatusVerified),
		humanize.Bytes(uint64(f.Size)),
		f.FilepathSrc)
}
