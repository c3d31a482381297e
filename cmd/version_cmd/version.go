package version_cmd

import (
	L "archivuelo/logger"
	"context"
	"path/filepath"
)

// NOTE: populated at build time with -ldflags (-X)
var version string = "dev"

// NOTE: populated at build time with -ldflags (-X)
var commitHash string

func Execute(ctx context.Context, args []string) error {
	name := "archivuelo"
	if values, ok := ctx.Value(ValuesKey).(map[string]string); ok {
		name = filepath.Base(values["binary_name"])
	}
	L.Printf("%s version v%s, build %s\n", name, version, commitHash)
	return nil
}

type valuesKey struct{}

// ValuesKey stores the invocation details on the command context.
var ValuesKey = valuesKey{}
