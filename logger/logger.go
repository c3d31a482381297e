package L

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// NOTE: populated at build time with -ldflags (-X)
var printCallerLocation string

// log levels
type LogLevel byte

const (
	DEBUG LogLevel = iota
	INFO
	NORMAL
	WARN
	ERROR
	PANIC
	SILENT
)

// color modes
type ColorMode int

const (
	COLOR_MODE_AUTO ColorMode = iota
	COLOR_MODE_ALWAYS
	COLOR_MODE_NEVER
)

// styles
// debug - blue
var debugStyle = lipgloss.NewStyle().Padding(0).Margin(0).
	Foreground(lipgloss.Color("4"))

// info - green
var infoStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("2"))

// no color - normal
var noColorStyle = lipgloss.NewStyle()

// warn - yellow
var warnStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("3"))

// error,panic - red
var errorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("1"))

// prefixes
const (
	debugPrefix  string = "DBG  "
	infoPrefix   string = "INF  "
	normalPrefix string = "     "
	warnPrefix   string = "WRN  "
	errorPrefix  string = "ERR  "
	panicPrefix  string = "PNC  "
)

var (
	level        = INFO
	colorMode    = COLOR_MODE_AUTO
	debugLogger  = log.New(os.Stdout, colorize(debugPrefix, &debugStyle), log.Lmsgprefix)
	infoLogger   = log.New(os.Stdout, colorize(infoPrefix, &infoStyle), log.Lmsgprefix)
	normalLogger = log.New(os.Stdout, colorize(normalPrefix, &noColorStyle), log.Lmsgprefix)
	warnLogger   = log.New(os.Stdout, colorize(warnPrefix, &warnStyle), log.Lmsgprefix)
	errorLogger  = log.New(os.Stderr, colorize(errorPrefix, &errorStyle), log.Lmsgprefix)
	panicLogger  = log.New(os.Stderr, colorize(panicPrefix, &errorStyle), log.Lmsgprefix)
	// guards every write, pipeline workers log concurrently
	outputMutex = &sync.Mutex{}
	footerText  = ""
	footerLines = 0
	footerLevel = INFO
)

// cursor sequences
const (
	c_escape     string = "\x1B"
	c_clear_line string = c_escape + "[2K"
	c_up         string = c_escape + "[1A"
)

func SetLevelFromString(l string) error {
	switch strings.ToLower(l) {
	case "debug":
		level = DEBUG
	case "info":
		level = INFO
	case "warn":
		level = WARN
	case "error":
		level = ERROR
	case "panic":
		level = PANIC
	case "silent":
		level = SILENT
	default:
		return fmt.Errorf("unsupported log level: %s", l)
	}
	return nil
}

func SetLevel(l LogLevel) error {
	switch l {
	case DEBUG, INFO, WARN, ERROR, PANIC, SILENT:
		level = l
	default:
		return fmt.Errorf("unsupported log level: %d", l)
	}
	return nil
}

func SetColorModeFromString(colorModeStr string) error {
	switch strings.ToLower(colorModeStr) {
	case "always":
		colorMode = COLOR_MODE_ALWAYS
	case "never":
		colorMode = COLOR_MODE_NEVER
	case "auto":
		colorMode = COLOR_MODE_AUTO
	default:
		return fmt.Errorf("unsupported color mode: %s", colorModeStr)
	}
	updateLoggerPrefixColors()
	return nil
}

func SetColorMode(cm ColorMode) error {
	switch cm {
	case COLOR_MODE_ALWAYS, COLOR_MODE_NEVER, COLOR_MODE_AUTO:
		colorMode = cm
	default:
		return fmt.Errorf("unsupported color mode: %s", cm)
	}
	updateLoggerPrefixColors()
	return nil
}

func GetColorMode() ColorMode {
	return colorMode
}

func (cm ColorMode) String() string {
	switch cm {
	case COLOR_MODE_ALWAYS:
		return "always"
	case COLOR_MODE_NEVER:
		return "never"
	case COLOR_MODE_AUTO:
		return "auto"
	default:
		return "auto"
	}
}

func Debug(v ...any) {
	debug(fmt.Sprintln(v...))
}

func Debugf(format string, v ...any) {
	debug(fmt.Sprintf(format, v...) + "\n")
}

func Info(v ...any) {
	info(fmt.Sprintln(v...))
}

func Infof(format string, v ...any) {
	info(fmt.Sprintf(format, v...) + "\n")
}

func Warn(v ...any) {
	warn(fmt.Sprintln(v...))
}

func Warnf(format string, v ...any) {
	warn(fmt.Sprintf(format, v...) + "\n")
}

func Error(v ...any) {
	logError(fmt.Sprintln(v...))
}

func Errorf(format string, v ...any) {
	logError(fmt.Sprintf(format, v...) + "\n")
}

func Panic(v ...any) {
	outputMutex.Lock()
	clearFooter()
	printMultiline(panicLogger, &errorStyle, fmt.Sprintln(v...))
	outputMutex.Unlock()
	os.Exit(1)
}

func debug(s string) {
	if level <= DEBUG {
		outputMutex.Lock()
		defer outputMutex.Unlock()
		clearFooter()
		if printCallerLocation == "true" {
			printWithCallerLocation(debugLogger, &debugStyle, s)
		} else {
			printMultiline(debugLogger, &debugStyle, s)
		}
		footerLines = printFooter()
	}
}

func info(s string) {
	if level <= INFO {
		outputMutex.Lock()
		defer outputMutex.Unlock()
		clearFooter()
		printMultiline(infoLogger, &infoStyle, s)
		footerLines = printFooter()
	}
}

func warn(s string) {
	if level <= WARN {
		outputMutex.Lock()
		defer outputMutex.Unlock()
		clearFooter()
		printMultiline(warnLogger, &warnStyle, s)
		footerLines = printFooter()
	}
}

func logError(s string) {
	if level <= ERROR {
		outputMutex.Lock()
		defer outputMutex.Unlock()
		clearFooter()
		if printCallerLocation == "true" {
			printWithCallerLocation(errorLogger, &errorStyle, s)
		} else {
			printMultiline(errorLogger, &errorStyle, s)
		}
		footerLines = printFooter()
	}
}

func GetLogLevel() LogLevel {
	return level
}

func IsVerbose() bool {
	return level < INFO
}

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "debug"
	case INFO:
		return "info"
	case WARN:
		return "warn"
	case ERROR:
		return "error"
	case PANIC:
		return "panic"
	case SILENT:
		return "silent"
	default:
		return "Unknown log level, indicates a bug. Please report"
	}
}

func Printf(format string, v ...any) (int, error) {
	if level < SILENT {
		outputMutex.Lock()
		defer outputMutex.Unlock()
		clearFooter()
		n := printMultiline(normalLogger, &noColorStyle, fmt.Sprintf(format, v...))
		footerLines = printFooter()
		return n, nil
	}
	return 0, nil
}

func Print(a ...any) (int, error) {
	if level < SILENT {
		outputMutex.Lock()
		defer outputMutex.Unlock()
		clearFooter()
		n := printMultiline(normalLogger, &noColorStyle, fmt.Sprint(a...))
		footerLines = printFooter()
		return n, nil
	}
	return 0, nil
}

func Println(a ...any) (int, error) {
	if level < SILENT {
		outputMutex.Lock()
		defer outputMutex.Unlock()
		clearFooter()
		n := printMultiline(normalLogger, &noColorStyle, fmt.Sprintln(a...))
		footerLines = printFooter()
		return n, nil
	}
	return 0, nil
}

// prints a persistent string "s" at the bottom of the terminal output.
// previous "footer" is cleared before each log and reprinted after.
// passing "s" as an empty string removes the footer.
func Footer(l LogLevel, s string) {
	outputMutex.Lock()
	defer outputMutex.Unlock()

	// clear previous footer output and reprint
	clearFooter()
	footerText = strings.TrimSpace(s)
	footerLevel = l
	footerLines = printFooter()
}

// caller must hold outputMutex
func clearFooter() {
	if footerLines == 0 {
		return
	}
	var sb strings.Builder
	for i := 0; i < footerLines; i++ {
		sb.WriteString(c_up)
		sb.WriteString(c_clear_line)
	}
	sb.WriteString("\r")
	fmt.Fprint(os.Stdout, sb.String())
	footerLines = 0
}

// caller must hold outputMutex; returns the number of lines printed
func printFooter() int {
	if footerText == "" || level > footerLevel {
		return 0
	}
	fmt.Fprintln(os.Stdout, footerText)
	return strings.Count(footerText, "\n") + 1
}

func printMultiline(logger *log.Logger, style *lipgloss.Style, s string) int {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	written := 0
	for _, line := range lines {
		if colorEnabled() {
			line = style.Render(line)
		}
		logger.Println(line)
		written += len(line) + 1
	}
	return written
}

func printWithCallerLocation(logger *log.Logger, style *lipgloss.Style, s string) int {
	// skip printWithCallerLocation, the level helper and the exported function
	_, file, line, ok := runtime.Caller(3)
	if ok {
		idx := strings.LastIndex(file, "/")
		s = fmt.Sprintf("%s:%d %s", file[idx+1:], line, s)
	}
	return printMultiline(logger, style, s)
}

func colorEnabled() bool {
	switch colorMode {
	case COLOR_MODE_ALWAYS:
		return true
	case COLOR_MODE_NEVER:
		return false
	default:
		return termenv.NewOutput(os.Stdout).EnvColorProfile() != termenv.Ascii
	}
}

func colorize(prefix string, style *lipgloss.Style) string {
	if !colorEnabled() {
		return prefix
	}
	return style.Render(prefix)
}

func updateLoggerPrefixColors() {
	switch colorMode {
	case COLOR_MODE_ALWAYS:
		lipgloss.SetColorProfile(termenv.ANSI256)
	case COLOR_MODE_NEVER:
		lipgloss.SetColorProfile(termenv.Ascii)
	default:
		lipgloss.SetColorProfile(termenv.NewOutput(os.Stdout).EnvColorProfile())
	}
	debugLogger.SetPrefix(colorize(debugPrefix, &debugStyle))
	infoLogger.SetPrefix(colorize(infoPrefix, &infoStyle))
	normalLogger.SetPrefix(colorize(normalPrefix, &noColorStyle))
	warnLogger.SetPrefix(colorize(warnPrefix, &warnStyle))
	errorLogger.SetPrefix(colorize(errorPrefix, &errorStyle))
	panicLogger.SetPrefix(colorize(panicPrefix, &errorStyle))
}
