package subnet

import (
	"net"

	"netradar/internal/log"
)

// Resolve determines the default scan target from the host's network
// configuration, assuming a /24 around the primary local address. It
// never fails; the loopback /24 is the last resort.
func Resolve() string {
	if ip := outboundIP(); ip != nil {
		return cidr24(ip)
	}

	addrs, err := net.InterfaceAddrs()
	if err == nil {
		for _, a := range addrs {
			ipnet, ok := a.(*net.IPNet)
			if !ok || ipnet.IP.IsLoopback() {
				continue
			}
			if ip4 := ipnet.IP.To4(); ip4 != nil {
				return cidr24(ip4)
			}
		}
	}

	log.Warn("No usable interface address, falling back to loopback subnet")
	return "127.0.0.1/24"
}

// outboundIP learns the local address the kernel would route external
// traffic from. Dialing UDP sends nothing on the wire.
func outboundIP() net.IP {
	conn, err := net.Dial("udp4", "8.8.8.8:80")
	if err != nil {
		return nil
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return nil
	}
	return addr.IP.To4()
}

func cidr24(ip net.IP) string {
	masked := ip.Mask(net.CIDRMask(24, 32))
	return masked.String() + "/24"
}
