package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

type flagKind int

const (
	kindString flagKind = iota
	kindInt
	kindBool
)

// fieldFlag maps an update flag onto the JSON field it sets
type fieldFlag struct {
	flag  string
	field string
	kind  flagKind
	usage string

	// nullable fields can be cleared with --clear
	nullable bool
}

func registerFieldFlags(cmd *cobra.Command, specs []fieldFlag) {
	var clearable []string
	for _, s := range specs {
		switch s.kind {
		case kindInt:
			cmd.Flags().Int(s.flag, 0, s.usage)
		case kindBool:
			cmd.Flags().Bool(s.flag, false, s.usage)
		default:
			cmd.Flags().String(s.flag, "", s.usage)
		}
		if s.nullable {
			clearable = append(clearable, s.flag)
		}
	}
	if len(clearable) > 0 {
		cmd.Flags().StringSlice("clear", nil, "Fields to set to null: "+strings.Join(clearable, ", "))
	}
}

// updateFields collects the flags given on the command line into a partial
// update body. Flags left unset are not sent.
func updateFields(cmd *cobra.Command, specs []fieldFlag) (map[string]interface{}, error) {
	fields := map[string]interface{}{}
	byFlag := map[string]fieldFlag{}

	for _, s := range specs {
		byFlag[s.flag] = s
		if !cmd.Flags().Changed(s.flag) {
			continue
		}
		switch s.kind {
		case kindInt:
			v, _ := cmd.Flags().GetInt(s.flag)
			fields[s.field] = v
		case kindBool:
			v, _ := cmd.Flags().GetBool(s.flag)
			fields[s.field] = v
		default:
			v, _ := cmd.Flags().GetString(s.flag)
			fields[s.field] = v
		}
	}

	if cmd.Flags().Lookup("clear") != nil {
		cleared, _ := cmd.Flags().GetStringSlice("clear")
		for _, name := range cleared {
			s, ok := byFlag[name]
			if !ok || !s.nullable {
				return nil, fmt.Errorf("cannot clear %q", name)
			}
			if _, set := fields[s.field]; set {
				return nil, fmt.Errorf("--%s and --clear %s are exclusive", name, name)
			}
			fields[s.field] = nil
		}
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("nothing to update: pass at least one field flag")
	}
	return fields, nil
}

func optionalInt(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt(name)
	return &v
}

func optionalString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func formatInt(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}

func formatString(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func parseJobID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid job id: %q", arg)
	}
	return id, nil
}
