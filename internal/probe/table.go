package probe

import (
	"bufio"
	"io"
	"strings"
)

// tableEntry is one resolved row of the system ARP table.
type tableEntry struct {
	IP  string
	MAC string
}

// parseARPTable parses /proc/net/arp style content: a header line, then
// "IP HWtype Flags HWaddr Mask Device" rows. Incomplete entries (flags
// 0x0 or a zero MAC) are skipped.
func parseARPTable(r io.Reader) []tableEntry {
	s := bufio.NewScanner(r)
	s.Scan() // skip header

	var entries []tableEntry
	for s.Scan() {
		fields := strings.Fields(s.Text())
		if len(fields) < 4 {
			continue
		}

		ip, flags, mac := fields[0], fields[2], fields[3]
		if flags == "0x0" || mac == "00:00:00:00:00:00" {
			continue
		}

		entries = append(entries, tableEntry{IP: ip, MAC: mac})
	}
	return entries
}
