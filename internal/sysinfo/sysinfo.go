// Package sysinfo answers discovery questions about the host so
// startup can validate configuration and describe the machine before
// the sample loop takes over.
package sysinfo

import (
	"fmt"
	"sort"
	"time"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	psnet "github.com/shirou/gopsutil/v4/net"
)

// Banner describes the host in one line for the startup log.
func Banner() (string, error) {
	info, err := host.Info()
	if err != nil {
		return "", fmt.Errorf("sysinfo: host info: %w", err)
	}
	up := time.Duration(info.Uptime) * time.Second
	return fmt.Sprintf("%s (%s %s, kernel %s), up %s",
		info.Hostname, info.Platform, info.PlatformVersion,
		info.KernelVersion, up), nil
}

// Interfaces lists the network interfaces that expose traffic counters.
func Interfaces() ([]string, error) {
	counters, err := psnet.IOCounters(true)
	if err != nil {
		return nil, fmt.Errorf("sysinfo: interfaces: %w", err)
	}
	names := make([]string, 0, len(counters))
	for _, c := range counters {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names, nil
}

// HasInterface reports whether the named interface exposes counters.
func HasInterface(name string) (bool, error) {
	names, err := Interfaces()
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// BlockDevices lists the block devices that expose I/O counters.
func BlockDevices() ([]string, error) {
	counters, err := disk.IOCounters()
	if err != nil {
		return nil, fmt.Errorf("sysinfo: block devices: %w", err)
	}
	names := make([]string, 0, len(counters))
	for name := range counters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
