package segments

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/powerline/internal/detector"
	"github.com/alexisbeaulieu97/powerline/internal/segment"
)

type username struct {
	env detector.Env
}

// NewUser shows the login name, in the root colors for uid 0.
func NewUser(env detector.Env) detector.Detector {
	return &username{env: env.WithDefaults()}
}

func (d *username) Metadata() detector.Metadata {
	return detector.Metadata{Name: "user", Description: "Current user name; highlighted for root."}
}

func (d *username) Detect(_ context.Context, p *segment.Powerline) error {
	name, root, err := currentUser(d.env)
	if err != nil {
		return err
	}

	t := p.Theme()
	if root {
		p.Push(segment.New(t.UsernameRootFG, t.UsernameRootBG, name))
		return nil
	}
	p.Push(segment.New(t.UsernameFG, t.UsernameBG, name))
	return nil
}

// currentUser falls back to $USER when the user database is unavailable.
func currentUser(env detector.Env) (name string, root bool, err error) {
	u, lookupErr := env.CurrentUser()
	if lookupErr == nil && u.Username != "" {
		return u.Username, u.Uid == "0", nil
	}

	if name := env.Getenv("USER"); name != "" {
		return name, name == "root", nil
	}
	if lookupErr != nil {
		return "", false, fmt.Errorf("look up current user: %w", lookupErr)
	}
	return "", false, fmt.Errorf("current user has no name")
}

type hostname struct {
	env detector.Env
}

// NewHost shows the short host name.
func NewHost(env detector.Env) detector.Detector {
	return &hostname{env: env.WithDefaults()}
}

func (d *hostname) Metadata() detector.Metadata {
	return detector.Metadata{Name: "host", Description: "Short host name."}
}

func (d *hostname) Detect(_ context.Context, p *segment.Powerline) error {
	host, err := d.env.Hostname()
	if err != nil {
		return fmt.Errorf("read hostname: %w", err)
	}

	short, _, _ := strings.Cut(host, ".")
	if short == "" {
		return nil
	}

	t := p.Theme()
	p.Push(segment.New(t.HostnameFG, t.HostnameBG, short))
	return nil
}

var (
	_ detector.Detector = (*username)(nil)
	_ detector.Detector = (*hostname)(nil)
)
