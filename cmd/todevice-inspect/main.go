// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/todevice"
	"github.com/bureau-foundation/todevice/spool"
)

func main() {
	os.Exit(run())
}

func run() int {
	var rawOnly bool
	var jsonOutput bool
	var spoolPath string

	flagSet := pflag.NewFlagSet("todevice-inspect", pflag.ContinueOnError)
	flagSet.BoolVar(&rawOnly, "raw", false, "stop after structural decode, skip content validation")
	flagSet.BoolVar(&jsonOutput, "json", false, "emit one JSON report per event on stdout")
	flagSet.StringVar(&spoolPath, "spool", "", "append accepted events to this CBOR spool file")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return 0
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return 0
	}

	inputs, err := readInputs(flagSet.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	var accepted []json.RawMessage
	rejected := 0

	for _, input := range inputs {
		payloads, err := extractPayloads(input.data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", input.name, err)
			return 2
		}
		for index, payload := range payloads {
			report := inspectPayload(payload, rawOnly)
			report.Source = input.name
			report.Index = index
			if err := emitReport(report, jsonOutput); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				return 2
			}
			if report.Valid {
				accepted = append(accepted, payload)
			} else {
				rejected++
			}
		}
	}

	if spoolPath != "" && len(accepted) > 0 {
		queue, err := spool.Open(spoolPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: opening spool: %v\n", err)
			return 2
		}
		if err := queue.Append(accepted); err != nil {
			fmt.Fprintf(os.Stderr, "error: appending to spool: %v\n", err)
			return 2
		}
	}

	if rejected > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d events rejected\n", rejected, rejected+len(accepted))
		return 1
	}
	return 0
}

// input is one source of payloads: a named file or stdin.
type input struct {
	name string
	data []byte
}

func readInputs(paths []string) ([]input, error) {
	if len(paths) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return []input{{name: "stdin", data: data}}, nil
	}
	inputs := make([]input, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		inputs = append(inputs, input{name: path, data: data})
	}
	return inputs, nil
}

// extractPayloads turns one input document into individual event
// payloads. The document may be a single event object, an array of
// events, or a to_device sync section ({"events": [...]}). JSONC
// comments and trailing commas are stripped first.
func extractPayloads(data []byte) ([]json.RawMessage, error) {
	stripped := jsonc.ToJSON(data)

	var probe json.RawMessage
	if err := json.Unmarshal(stripped, &probe); err != nil {
		return nil, fmt.Errorf("parsing input: %w", err)
	}

	switch probe[0] {
	case '[':
		var payloads []json.RawMessage
		if err := json.Unmarshal(probe, &payloads); err != nil {
			return nil, fmt.Errorf("parsing event array: %w", err)
		}
		return payloads, nil
	case '{':
		var object map[string]json.RawMessage
		if err := json.Unmarshal(probe, &object); err != nil {
			return nil, fmt.Errorf("parsing input: %w", err)
		}
		// A to_device section has an "events" array and no "type".
		// Anything else is treated as a single event payload.
		_, hasEvents := object["events"]
		_, hasType := object["type"]
		if hasEvents && !hasType {
			var section todevice.ToDeviceSection
			if err := json.Unmarshal(probe, &section); err != nil {
				return nil, fmt.Errorf("parsing to_device section: %w", err)
			}
			return section.Events, nil
		}
		return []json.RawMessage{probe}, nil
	default:
		return nil, fmt.Errorf("input must be a JSON object or array")
	}
}

// report describes the outcome of decoding and validating one payload.
type report struct {
	Source string `json:"source"`
	Index  int    `json:"index"`
	Type   string `json:"type,omitempty"`
	Sender string `json:"sender,omitempty"`
	Valid  bool   `json:"valid"`
	Error  string `json:"error,omitempty"`
}

func inspectPayload(payload json.RawMessage, rawOnly bool) report {
	result := report{Sender: senderOf(payload)}

	raw, err := todevice.Decode(payload)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Type = raw.Type().String()

	if rawOnly {
		result.Valid = true
		return result
	}

	if _, err := todevice.Validate(raw); err != nil {
		result.Error = err.Error()
		return result
	}
	result.Valid = true
	return result
}

// senderOf pulls the sender string out of the payload for reporting.
// Decode rejects malformed senders; this is only display context.
func senderOf(payload json.RawMessage) string {
	var envelope struct {
		Sender string `json:"sender"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return ""
	}
	return envelope.Sender
}

func emitReport(result report, asJSON bool) error {
	if asJSON {
		line, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		fmt.Fprintf(os.Stdout, "%s\n", line)
		return nil
	}
	status := "ok"
	if !result.Valid {
		status = "rejected"
	}
	fmt.Fprintf(os.Stdout, "%s[%d]: %-8s type=%s sender=%s", result.Source, result.Index, status, result.Type, result.Sender)
	if result.Error != "" {
		fmt.Fprintf(os.Stdout, " error=%q", result.Error)
	}
	fmt.Fprintln(os.Stdout)
	return nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Decode and validate Matrix to-device event payloads.

Reads each FILE (or stdin when no files are given) as a single event
object, an array of events, or a to_device sync section, and reports
the outcome for every event. Input may contain JSONC comments.

Usage: todevice-inspect [flags] [FILE...]

Flags:
%s
Exit codes:
  0  every event decoded and validated
  1  at least one event was rejected
  2  error
`, flagSet.FlagUsages())
}
