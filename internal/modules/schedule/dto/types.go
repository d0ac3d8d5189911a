package dto

import (
	"io"
	"time"
)

type EventOutput struct {
	Label         string
	Begin         string
	End           string
	Countdown     time.Duration
	CountdownText string
}

type ReportOutput struct {
	Now     time.Time
	State   string
	Message string
	Ongoing []EventOutput
	Waiting []EventOutput
}

type StageInput struct {
	Command string
}

type PendingOutput struct {
	Kind      string
	Weekday   int
	DateKey   string
	BeginTime string
	EndTime   string
	Event     string
	Summary   string
}

// CommitInput rebuilds the confirmed pending entry.
func (p PendingOutput) CommitInput() CommitInput {
	return CommitInput{
		Kind:      p.Kind,
		Weekday:   p.Weekday,
		DateKey:   p.DateKey,
		BeginTime: p.BeginTime,
		EndTime:   p.EndTime,
		Event:     p.Event,
	}
}

type CommitInput struct {
	Kind      string
	Weekday   int
	DateKey   string
	BeginTime string
	EndTime   string
	Event     string
}

type CommitOutput struct {
	Summary string
	Weekly  int
	Dated   int
}

type AgendaInput struct {
	Days int
}

type OccurrenceOutput struct {
	Date    string
	Weekday string
	Begin   string
	End     string
	Label   string
	Weekly  bool
}

type ExportInput struct {
	Out io.Writer
}

type ExportOutput struct {
	Events int
}

type FindInput struct {
	Query string
	Limit int
}

type EntryOutput struct {
	ID        string
	Kind      string
	Slot      string
	BeginTime string
	EndTime   string
	Event     string
}
