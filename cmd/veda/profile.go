package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/veda-client/pkg/veda/auth"
	"github.com/diwise/veda-client/pkg/veda/client"
	"gopkg.in/yaml.v2"
)

// Profile holds the connection settings for a platform
type Profile struct {
	URL      string `yaml:"url"`
	Login    string `yaml:"login"`
	Password string `yaml:"password"`
}

func defaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".veda", "profile.yaml")
}

func loadProfile(r io.Reader) (*Profile, error) {
	p := &Profile{}

	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(buf, p)
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	return p, nil
}

// resolveProfile reads the profile file, if there is one, and lets the environment
// and then the command line flags override its settings
func resolveProfile(ctx context.Context, path string) (*Profile, error) {
	p := &Profile{}

	if path != "" {
		f, err := os.Open(path)
		if err == nil {
			defer f.Close()
			p, err = loadProfile(f)
			if err != nil {
				return nil, err
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	p.URL = env.GetVariableOrDefault(ctx, "VEDA_URL", p.URL)
	p.Login = env.GetVariableOrDefault(ctx, "VEDA_LOGIN", p.Login)
	p.Password = env.GetVariableOrDefault(ctx, "VEDA_PASSWORD", p.Password)

	if serverURL != "" {
		p.URL = serverURL
	}
	if login != "" {
		p.Login = login
	}
	if password != "" {
		p.Password = password
	}

	if p.URL == "" {
		return nil, errors.New("no platform url configured, use --url or VEDA_URL")
	}

	return p, nil
}

// connect creates a client for the resolved profile and authenticates it
func connect(ctx context.Context) (client.VedaClient, error) {
	p, err := resolveProfile(ctx, profilePath)
	if err != nil {
		return nil, err
	}

	c := client.NewVedaClient(p.URL, client.Debug(strconv.FormatBool(debug)))

	_, err = c.Authenticate(ctx, p.Login, auth.HashPassword(p.Password), "")
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate as %s: %w", p.Login, err)
	}

	return c, nil
}
