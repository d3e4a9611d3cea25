package lldpd

import (
	"net/netip"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"

	"github.com/extrame/lldpagent/lldpdu"
)

// Config is the agent configuration file.
//
//	interface: eth0
//	interval: 1.5
//	ttl: 120
//	system_name: switch-a
//	capabilities:
//	  supported: [bridge, router]
//	  enabled: [bridge]
//	management_address: 192.0.2.7
type Config struct {
	Interface         string            `yaml:"interface"`
	Interval          float64           `yaml:"interval"`
	TTL               uint16            `yaml:"ttl"`
	Strict            bool              `yaml:"strict"`
	SystemName        string            `yaml:"system_name"`
	SystemDescription string            `yaml:"system_description"`
	PortDescription   string            `yaml:"port_description"`
	Capabilities      *CapabilityConfig `yaml:"capabilities"`
	ManagementAddress string            `yaml:"management_address"`
}

// CapabilityConfig names capabilities, see lldpdu.ParseCapability.
type CapabilityConfig struct {
	Supported []string `yaml:"supported"`
	Enabled   []string `yaml:"enabled"`
}

// DefaultConfig runs on eth0 with the default interval and TTL.
func DefaultConfig() *Config {
	return &Config{
		Interface: "eth0",
		Interval:  DefaultInterval.Seconds(),
		TTL:       DefaultTTL,
	}
}

// LoadConfig reads a YAML file over DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "lldpd: reading config")
	}
	c, err := ParseConfig(b)
	if err != nil {
		return nil, errors.Wrapf(err, "lldpd: %s", path)
	}
	return c, nil
}

// ParseConfig decodes YAML over DefaultConfig.
func ParseConfig(b []byte) (*Config, error) {
	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}
	return c, nil
}

// Options converts the configuration to agent options. Optional TLVs are
// built in the order port description, system name, system description,
// capabilities, management address.
func (c *Config) Options() ([]Option, error) {
	interval := time.Duration(c.Interval * float64(time.Second))
	opts := []Option{Interval(interval), TTL(c.TTL)}
	if c.Strict {
		opts = append(opts, Strict())
	}

	tlvs, err := c.tlvs()
	if err != nil {
		return nil, err
	}
	if len(tlvs) > 0 {
		opts = append(opts, WithTLVs(tlvs...))
	}
	return opts, nil
}

func (c *Config) tlvs() ([]lldpdu.TLV, error) {
	var tlvs []lldpdu.TLV
	if c.PortDescription != "" {
		t, err := lldpdu.NewPortDescription(c.PortDescription)
		if err != nil {
			return nil, errors.Wrap(err, "port_description")
		}
		tlvs = append(tlvs, t)
	}
	if c.SystemName != "" {
		t, err := lldpdu.NewSystemName(c.SystemName)
		if err != nil {
			return nil, errors.Wrap(err, "system_name")
		}
		tlvs = append(tlvs, t)
	}
	if c.SystemDescription != "" {
		t, err := lldpdu.NewSystemDescription(c.SystemDescription)
		if err != nil {
			return nil, errors.Wrap(err, "system_description")
		}
		tlvs = append(tlvs, t)
	}
	if c.Capabilities != nil {
		supported, err := capabilityMask(c.Capabilities.Supported)
		if err != nil {
			return nil, errors.Wrap(err, "capabilities.supported")
		}
		enabled, err := capabilityMask(c.Capabilities.Enabled)
		if err != nil {
			return nil, errors.Wrap(err, "capabilities.enabled")
		}
		t, err := lldpdu.NewSystemCapabilities(supported, enabled)
		if err != nil {
			return nil, errors.Wrap(err, "capabilities")
		}
		tlvs = append(tlvs, t)
	}
	if c.ManagementAddress != "" {
		addr, err := netip.ParseAddr(c.ManagementAddress)
		if err != nil {
			return nil, errors.Wrap(err, "management_address")
		}
		t, err := lldpdu.NewManagementAddress(addr, 0, lldpdu.InterfaceNumberingUnknown, nil)
		if err != nil {
			return nil, errors.Wrap(err, "management_address")
		}
		tlvs = append(tlvs, t)
	}
	return tlvs, nil
}

func capabilityMask(names []string) (lldpdu.Capability, error) {
	var mask lldpdu.Capability
	for _, name := range names {
		c, err := lldpdu.ParseCapability(name)
		if err != nil {
			return 0, err
		}
		mask |= c
	}
	return mask, nil
}
