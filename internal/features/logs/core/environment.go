package logs_core

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
)

// BackgroundOrigin marks entries produced outside of any page.
const BackgroundOrigin = "background"

// Environment describes the execution context stamped onto every entry.
type Environment struct {
	Origin    string `json:"origin"`
	AgentInfo string `json:"agentInfo"`
}

func NewEnvironment(origin string) Environment {
	if origin == "" {
		origin = BackgroundOrigin
	}

	return Environment{
		Origin:    origin,
		AgentInfo: DescribeAgent(),
	}
}

// DescribeAgent builds the opaque agent descriptor from the host the process runs on.
func DescribeAgent() string {
	parts := []string{}

	info, err := host.Info()
	if err == nil && info != nil {
		parts = append(parts, info.OS)
		if info.Platform != "" {
			parts = append(parts, strings.TrimSpace(info.Platform+" "+info.PlatformVersion))
		}
		if info.KernelArch != "" {
			parts = append(parts, info.KernelArch)
		}
	} else {
		parts = append(parts, runtime.GOOS, runtime.GOARCH)
	}

	parts = append(parts, runtime.Version())

	return fmt.Sprintf("extlog (%s)", strings.Join(parts, "; "))
}
