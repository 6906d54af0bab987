//go:build linux

package probe

import "os"

const procNetARPFile = "/proc/net/arp"

func readARPTable() ([]tableEntry, error) {
	f, err := os.Open(procNetARPFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parseARPTable(f), nil
}
