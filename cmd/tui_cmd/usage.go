package tui_cmd

import L "archivuelo/logger"

const usageStr string = `
USAGE
archivuelo tui [-c CONFIG]

DESCRIPTION
Launches the interactive Terminal User Interface for browsing tracked
media files and their import status.

KEYS
tab         switch between the sidebar and the file list
up/down     move, also k/j
r           reload from the database
q           quit
`

func PrintUsage() {
	L.Print(usageStr)
}
