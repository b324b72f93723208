package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	apperrors "diagonator/internal/platform/errors"
	"diagonator/internal/platform/protocol"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func checkOutput(output string, allowed ...string) error {
	if !slices.Contains(allowed, output) {
		return fmt.Errorf("%w: output must be one of %s", apperrors.ErrUsage, strings.Join(allowed, "|"))
	}
	return nil
}

type requirementView struct {
	ID       uint64 `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Due      string `json:"due,omitempty" yaml:"due,omitempty"`
	Complete bool   `json:"complete" yaml:"complete"`
}

type rangeView struct {
	ID    uint64 `json:"id" yaml:"id"`
	Start string `json:"start,omitempty" yaml:"start,omitempty"`
	End   string `json:"end,omitempty" yaml:"end,omitempty"`
}

type infoView struct {
	State            string            `json:"state" yaml:"state"`
	Reason           string            `json:"reason" yaml:"reason"`
	Until            string            `json:"until,omitempty" yaml:"until,omitempty"`
	Requirements     []requirementView `json:"requirements" yaml:"requirements"`
	LockedTimeRanges []rangeView       `json:"locked_time_ranges" yaml:"locked_time_ranges"`
}

func newInfoView(info protocol.SessionInfo) infoView {
	view := infoView{
		State:            string(info.State),
		Reason:           info.Reason.String(),
		Requirements:     make([]requirementView, 0, len(info.Requirements)),
		LockedTimeRanges: make([]rangeView, 0, len(info.LockedTimeRanges)),
	}
	if info.Until != nil {
		view.Until = info.Until.Time().Format(time.RFC3339)
	}
	for _, req := range info.Requirements {
		view.Requirements = append(view.Requirements, requirementView{ID: req.ID, Name: req.Name, Due: timeOfDay(req.Due), Complete: req.Complete})
	}
	for _, ltr := range info.LockedTimeRanges {
		view.LockedTimeRanges = append(view.LockedTimeRanges, rangeView{ID: ltr.ID, Start: timeOfDay(ltr.Start), End: timeOfDay(ltr.End)})
	}
	return view
}

func timeOfDay(t *protocol.TimeOfDay) string {
	if t == nil {
		return ""
	}
	return t.String()
}

func writeInfo(w io.Writer, info protocol.SessionInfo, output string, now time.Time) error {
	switch output {
	case outputJSON:
		_, err := fmt.Fprintln(w, info.JSON())
		return err
	case outputYAML:
		payload, err := yaml.Marshal(newInfoView(info))
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = w.Write(payload)
		return err
	default:
		return writeInfoText(w, info, now)
	}
}

func writeInfoText(w io.Writer, info protocol.SessionInfo, now time.Time) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "state:\t%s\n", info.State)
	_, _ = fmt.Fprintf(tw, "reason:\t%s\n", describeReason(info))
	if info.Until != nil {
		until := info.Until.Time()
		_, _ = fmt.Fprintf(tw, "until:\t%s (%s)\n", until.Format("15:04:05"), humanize.RelTime(until, now, "ago", "from now"))
	} else {
		_, _ = fmt.Fprintln(tw, "until:\tno scheduled change")
	}
	if len(info.Requirements) > 0 {
		_, _ = fmt.Fprintln(tw, "requirements:")
		for _, req := range info.Requirements {
			mark := "[ ]"
			if req.Complete {
				mark = "[x]"
			}
			due := "-"
			if req.Due != nil {
				due = req.Due.String()
			}
			_, _ = fmt.Fprintf(tw, "  %s %s\tdue %s\n", mark, req.Name, due)
		}
	}
	if len(info.LockedTimeRanges) > 0 {
		_, _ = fmt.Fprintln(tw, "locked time ranges:")
		for _, ltr := range info.LockedTimeRanges {
			_, _ = fmt.Fprintf(tw, "  #%d\t%s-%s\n", ltr.ID, orDash(timeOfDay(ltr.Start)), orDash(timeOfDay(ltr.End)))
		}
	}
	return tw.Flush()
}

// describeReason names the requirement or range a reason points at.
func describeReason(info protocol.SessionInfo) string {
	if info.Reason.ID == nil {
		return string(info.Reason.Type)
	}
	switch info.Reason.Type {
	case protocol.ReasonRequirementNotMet:
		if req, ok := info.Requirement(*info.Reason.ID); ok {
			return fmt.Sprintf("%s (%s)", info.Reason.Type, req.Name)
		}
	case protocol.ReasonLockedTimeRange:
		if ltr, ok := info.LockedTimeRange(*info.Reason.ID); ok {
			return fmt.Sprintf("%s (%s-%s)", info.Reason.Type, orDash(timeOfDay(ltr.Start)), orDash(timeOfDay(ltr.End)))
		}
	}
	return info.Reason.String()
}

func describeRemaining(state protocol.State, remaining time.Duration, scheduled bool, now time.Time) string {
	if !scheduled {
		return fmt.Sprintf("%s, no scheduled change", state)
	}
	secs := int64(remaining / time.Second)
	return fmt.Sprintf("%s, %d:%02d remaining (changes %s)", state, secs/60, secs%60, humanize.RelTime(now.Add(remaining), now, "ago", "from now"))
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
