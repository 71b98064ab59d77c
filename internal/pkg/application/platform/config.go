package platform

import (
	"io"
	"slices"
	"time"

	yaml "gopkg.in/yaml.v2"
)

type User struct {
	Login    string   `yaml:"login"`
	Password string   `yaml:"password"`
	URI      string   `yaml:"uri"`
	Trusted  bool     `yaml:"trusted"`
	Groups   []string `yaml:"groups"`
}

// SuperUserGroup grants every right on every individual to its members
const SuperUserGroup string = "cfg:SuperUser"

func (u User) IsSuperUser() bool {
	return slices.Contains(u.Groups, SuperUserGroup)
}

type Config struct {
	TicketLifetime time.Duration `yaml:"ticketLifetime"`
	Users          []User        `yaml:"users"`
}

const DefaultTicketLifetime time.Duration = 12 * time.Hour

func LoadConfiguration(data io.Reader) (*Config, error) {

	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = yaml.Unmarshal(buf, &cfg)
	if err != nil {
		return nil, err
	}

	if cfg.TicketLifetime <= 0 {
		cfg.TicketLifetime = DefaultTicketLifetime
	}

	return cfg, nil
}
