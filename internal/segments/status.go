package segments

import (
	"context"
	"strconv"

	"github.com/alexisbeaulieu97/powerline/internal/detector"
	"github.com/alexisbeaulieu97/powerline/internal/segment"
)

const timeLayout = "15:04:05"

type jobs struct {
	env detector.Env
}

// NewJobs shows the number of background jobs when there are any.
func NewJobs(env detector.Env) detector.Detector {
	return &jobs{env: env.WithDefaults()}
}

func (d *jobs) Metadata() detector.Metadata {
	return detector.Metadata{Name: "jobs", Description: "Background job count."}
}

func (d *jobs) Detect(_ context.Context, p *segment.Powerline) error {
	if d.env.Jobs <= 0 {
		return nil
	}
	t := p.Theme()
	p.Push(segment.New(t.JobsFG, t.JobsBG, strconv.Itoa(d.env.Jobs)))
	return nil
}

type clock struct {
	env detector.Env
}

// NewTime shows the wall clock.
func NewTime(env detector.Env) detector.Detector {
	return &clock{env: env.WithDefaults()}
}

func (d *clock) Metadata() detector.Metadata {
	return detector.Metadata{Name: "time", Description: "Current time (HH:MM:SS)."}
}

func (d *clock) Detect(_ context.Context, p *segment.Powerline) error {
	t := p.Theme()
	p.Push(segment.New(t.TimeFG, t.TimeBG, d.env.Now().Format(timeLayout)))
	return nil
}

type exitStatus struct {
	env detector.Env
}

// NewCmd shows the prompt symbol colored by the previous command's status.
func NewCmd(env detector.Env) detector.Detector {
	return &exitStatus{env: env.WithDefaults()}
}

func (d *exitStatus) Metadata() detector.Metadata {
	return detector.Metadata{Name: "cmd", Description: "Prompt symbol colored by the last exit status."}
}

func (d *exitStatus) Detect(_ context.Context, p *segment.Powerline) error {
	t := p.Theme()
	symbol := promptSymbol(d.env)
	if d.env.ExitCode == 0 {
		p.Push(segment.New(t.CmdPassedFG, t.CmdPassedBG, symbol))
		return nil
	}
	p.Push(segment.New(t.CmdFailedFG, t.CmdFailedBG, symbol))
	return nil
}

type promptChar struct {
	env detector.Env
}

// NewPromptSymbol shows the prompt symbol in the fixed ps colors.
func NewPromptSymbol(env detector.Env) detector.Detector {
	return &promptChar{env: env.WithDefaults()}
}

func (d *promptChar) Metadata() detector.Metadata {
	return detector.Metadata{Name: "ps", Description: "Prompt symbol without status coloring."}
}

func (d *promptChar) Detect(_ context.Context, p *segment.Powerline) error {
	t := p.Theme()
	p.Push(segment.New(t.PromptFG, t.PromptBG, promptSymbol(d.env)))
	return nil
}

// promptSymbol is # for root, % for zsh users and $ otherwise.
func promptSymbol(env detector.Env) string {
	if _, root, err := currentUser(env); err == nil && root {
		return "#"
	}
	if env.Shell == "zsh" {
		return "%"
	}
	return "$"
}

var (
	_ detector.Detector = (*jobs)(nil)
	_ detector.Detector = (*clock)(nil)
	_ detector.Detector = (*exitStatus)(nil)
	_ detector.Detector = (*promptChar)(nil)
)
