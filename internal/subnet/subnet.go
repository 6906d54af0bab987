package subnet

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrInvalidCIDR is returned when user input cannot be parsed as an
// IPv4 CIDR range.
var ErrInvalidCIDR = errors.New("invalid subnet")

// Subnet is a validated IPv4 scan target. Immutable once parsed.
type Subnet struct {
	cidr  string
	ipnet *net.IPNet
}

// Parse validates a CIDR string. Host bits set in the input are accepted
// and masked off, so "192.168.1.17/24" normalizes to "192.168.1.0/24".
func Parse(cidr string) (Subnet, error) {
	trimmed := strings.TrimSpace(cidr)
	if trimmed == "" {
		return Subnet{}, fmt.Errorf("%w: empty string", ErrInvalidCIDR)
	}

	ip, ipnet, err := net.ParseCIDR(trimmed)
	if err != nil {
		return Subnet{}, fmt.Errorf("%w: %q", ErrInvalidCIDR, cidr)
	}
	if ip.To4() == nil {
		return Subnet{}, fmt.Errorf("%w: %q is not IPv4", ErrInvalidCIDR, cidr)
	}

	return Subnet{cidr: ipnet.String(), ipnet: ipnet}, nil
}

// String returns the normalized CIDR form.
func (s Subnet) String() string {
	return s.cidr
}

// IsZero reports whether the subnet has not been set.
func (s Subnet) IsZero() bool {
	return s.ipnet == nil
}

// Contains reports whether ip falls inside the subnet.
func (s Subnet) Contains(ip net.IP) bool {
	return s.ipnet != nil && s.ipnet.Contains(ip)
}

// Hosts returns every usable host address in the range. Network and
// broadcast addresses are skipped for prefixes of /30 and shorter;
// /31 and /32 have no such reserved addresses.
func (s Subnet) Hosts() []string {
	if s.ipnet == nil {
		return nil
	}

	ones, _ := s.ipnet.Mask.Size()
	network := s.ipnet.IP.Mask(s.ipnet.Mask)

	broadcast := make(net.IP, len(network))
	copy(broadcast, network)
	for i := range s.ipnet.Mask {
		broadcast[i] |= ^s.ipnet.Mask[i]
	}

	var hosts []string
	for ip := append(net.IP(nil), network...); s.ipnet.Contains(ip); inc(ip) {
		if ones <= 30 && (ip.Equal(network) || ip.Equal(broadcast)) {
			continue
		}
		hosts = append(hosts, ip.String())
	}
	return hosts
}

// inc increments an IP address in place.
func inc(ip net.IP) {
	for j := len(ip) - 1; j >= 0; j-- {
		ip[j]++
		if ip[j] > 0 {
			break
		}
	}
}
