package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

const ProfilesFile = ".mediaicfg"

// Profile is a named set of backend credentials.
type Profile struct {
	Name       string
	BaseURL    string
	Token      string
	CookieName string
}

type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (*Profile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

// DefaultProfilesPath is ~/.mediaicfg.
func DefaultProfilesPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ProfilesFile), nil
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, name string) (*Profile, error) {
	section, err := cr.cfg.GetSection(name)
	if err != nil || len(section.Keys()) == 0 {
		return nil, fmt.Errorf("profile %s not found", name)
	}

	return &Profile{
		Name:       name,
		BaseURL:    section.Key("base_url").String(),
		Token:      section.Key("token").String(),
		CookieName: section.Key("cookie_name").String(),
	}, nil
}

// Apply copies the non-empty profile fields over the backend settings.
func (p *Profile) Apply(b *BackendConfig) {
	if p.BaseURL != "" {
		b.BaseURL = p.BaseURL
	}
	if p.Token != "" {
		b.Token = p.Token
	}
	if p.CookieName != "" {
		b.CookieName = p.CookieName
	}
}
