package shell

import (
	"fmt"
	"strings"

	"github.com/aidanlsb/pbapi/internal/commands"
	"github.com/aidanlsb/pbapi/internal/helptext"
	"github.com/aidanlsb/pbapi/internal/ui"
)

// metaCommand runs a local command and reports whether the session ends.
type metaCommand func(s *Session, args []string) bool

var metaCommands = map[string]metaCommand{
	"help":   (*Session).doHelp,
	"use":    (*Session).doUse,
	"exit":   (*Session).doExit,
	"q":      (*Session).doExit,
	"quit":   (*Session).doExit,
	"bye":    (*Session).doExit,
	"wait":   (*Session).doWait,
	"nowait": (*Session).doNoWait,
	"about":  (*Session).doAbout,
}

func (s *Session) about() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, ui.Bold.Render("ProfitBricks API CLI v"+Version+" Copyright 2012 ProfitBricks GmbH")+
		", licensed under Apache 2.0 ( http://www.apache.org/licenses/LICENSE-2.0 )")
	fmt.Fprintln(s.out, "Type 'exit' to leave, 'help' for help, 'list' to list available operations, 'use DCID' to set a default working datacenter.")
}

func (s *Session) exit() {
	fmt.Fprintln(s.out, "Bye!")
}

func (s *Session) doAbout(_ []string) bool {
	s.about()
	return false
}

func (s *Session) doExit(_ []string) bool {
	s.exit()
	return true
}

func (s *Session) doUse(args []string) bool {
	if len(args) == 0 {
		s.context.SetTarget("")
		return false
	}
	s.context.SetTarget(args[0])
	return false
}

func (s *Session) doWait(_ []string) bool {
	fmt.Fprintln(s.out, "All operations will wait for data center to become available")
	s.context.SetWait(true)
	return false
}

func (s *Session) doNoWait(_ []string) bool {
	fmt.Fprintln(s.out, "Operations will no longer wait for data center to become available")
	s.context.SetWait(false)
	return false
}

func (s *Session) doHelp(args []string) bool {
	if len(args) == 0 {
		s.about()
		if s.help != nil {
			fmt.Fprintln(s.out)
			fmt.Fprint(s.out, helptext.Render(s.help.Source, s.width))
		}
		return false
	}

	topic := args[0]
	if s.help != nil {
		if section, ok := s.help.Topic(topic); ok {
			fmt.Fprint(s.out, helptext.Render(section.Body, s.width))
			return false
		}
	}
	if op, ok := s.dispatcher.Operations().Find(topic); ok {
		s.operationHelp(op)
		return false
	}
	fmt.Fprintln(s.out, ui.Warningf("No help for '%s'. Type 'list' to list available operations.", topic))
	return false
}

func (s *Session) operationHelp(op *commands.Operation) {
	fmt.Fprintln(s.out, ui.Header(commands.Usage(op)))
	if op.Description != "" {
		fmt.Fprintln(s.out, "  "+op.Description)
	}
	if len(op.Flags) > 0 {
		tbl := ui.NewTable(2)
		seen := map[string]bool{}
		for _, f := range op.Flags {
			key := strings.ToLower(f.Flag)
			if seen[key] {
				continue
			}
			seen[key] = true
			tbl.AddRow("  -"+key, ui.Hint(f.Description))
		}
		fmt.Fprintln(s.out)
		fmt.Fprint(s.out, tbl.String())
	}
	for _, ex := range op.Examples {
		fmt.Fprintln(s.out, ui.Hint("  e.g. "+ex))
	}
}
