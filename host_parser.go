package nin

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// HostInfo is one entry of a host list: an address and the numeric port
// rendered as a string, ready to be handed to net.Dial's "service" half.
type HostInfo struct {
	Host string
	Port string
}

// ParseHostList parses a JSON array of {"host": "...", "port": N} objects
// into an ordered list of HostInfo, preserving input order: that order is
// the peer probe order DCache.Init will use.
func ParseHostList(data []byte) ([]HostInfo, error) {
	var raw []struct {
		Host string `json:"host"`
		Port int    `json:"port"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		if se, ok := err.(*json.SyntaxError); ok {
			return nil, fmt.Errorf("host list: %w at offset %d", err, se.Offset)
		}
		return nil, fmt.Errorf("host list: %w", err)
	}

	infos := make([]HostInfo, len(raw))
	for i, r := range raw {
		infos[i] = HostInfo{Host: r.Host, Port: strconv.Itoa(r.Port)}
	}
	return infos, nil
}
