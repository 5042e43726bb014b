package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"
)

type Value interface {
	String() string
	Set(string) error
	Get() any
}

type stringValue struct{ p *string }

func (v *stringValue) Set(s string) error { *v.p = s; return nil }
func (v *stringValue) String() string     { return *v.p }
func (v *stringValue) Get() any           { return *v.p }

type boolValue struct{ p *bool }

func (v *boolValue) Set(s string) error {
	if s == "" {
		*v.p = true
		return nil
	}
	val, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("invalid boolean value '%s': %w", s, err)
	}
	*v.p = val
	return nil
}
func (v *boolValue) String() string { return strconv.FormatBool(*v.p) }
func (v *boolValue) Get() any       { return *v.p }

type intValue struct{ p *int }

func (v *intValue) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid integer value '%s': %w", s, err)
	}
	*v.p = n
	return nil
}
func (v *intValue) String() string { return strconv.Itoa(*v.p) }
func (v *intValue) Get() any       { return *v.p }

type listValue struct{ p *[]string }

func (v *listValue) Set(s string) error { *v.p = append(*v.p, s); return nil }
func (v *listValue) String() string     { return strings.Join(*v.p, ", ") }
func (v *listValue) Get() any           { return *v.p }

type Flag struct {
	Name         string
	Shorthand    string
	Usage        string
	Value        Value
	DefValue     string
	ExpectedType string
}

// FlagGroup is a family of on/off flags sharing a prefix, like -W<name> and
// -Wno-<name>. Each matching argument is handed to Apply.
type FlagGroup struct {
	Name    string
	Prefix  string
	Entries []GroupEntry
	Apply   func(flag string) error
}

type GroupEntry struct {
	Name    string
	Usage   string
	Enabled bool
}

type FlagSet struct {
	name       string
	flags      map[string]*Flag
	shorthands map[string]*Flag
	groups     []FlagGroup
	args       []string
}

func NewFlagSet(name string) *FlagSet {
	return &FlagSet{
		name:       name,
		flags:      make(map[string]*Flag),
		shorthands: make(map[string]*Flag),
	}
}

func (f *FlagSet) Args() []string { return f.args }

func (f *FlagSet) String(p *string, name, shorthand, value, usage, expectedType string) {
	*p = value
	f.Var(&stringValue{p}, name, shorthand, usage, value, expectedType)
}

func (f *FlagSet) Bool(p *bool, name, shorthand string, value bool, usage string) {
	*p = value
	f.Var(&boolValue{p}, name, shorthand, usage, strconv.FormatBool(value), "")
}

func (f *FlagSet) Int(p *int, name, shorthand string, value int, usage, expectedType string) {
	*p = value
	f.Var(&intValue{p}, name, shorthand, usage, strconv.Itoa(value), expectedType)
}

func (f *FlagSet) List(p *[]string, name, shorthand string, value []string, usage, expectedType string) {
	*p = value
	f.Var(&listValue{p}, name, shorthand, usage, strings.Join(value, ","), expectedType)
}

func (f *FlagSet) AddFlagGroup(g FlagGroup) { f.groups = append(f.groups, g) }

func (f *FlagSet) Var(value Value, name, shorthand, usage, defValue, expectedType string) {
	if name == "" {
		panic("flag name cannot be empty")
	}
	if _, ok := f.flags[name]; ok {
		panic(fmt.Sprintf("flag redefined: %s", name))
	}
	flag := &Flag{Name: name, Shorthand: shorthand, Usage: usage, Value: value, DefValue: defValue, ExpectedType: expectedType}
	f.flags[name] = flag
	if shorthand != "" {
		if _, ok := f.shorthands[shorthand]; ok {
			panic(fmt.Sprintf("shorthand flag redefined: %s", shorthand))
		}
		f.shorthands[shorthand] = flag
	}
}

func (f *FlagSet) Lookup(name string) *Flag { return f.flags[name] }

// Parse accepts --name, --name=value, -name, -name=value, -s value, -svalue
// and group flags. A lone "-" is an argument; "--" ends flag parsing.
func (f *FlagSet) Parse(arguments []string) error {
	f.args = []string{}
	for i := 0; i < len(arguments); i++ {
		arg := arguments[i]
		if len(arg) < 2 || arg[0] != '-' {
			f.args = append(f.args, arg)
			continue
		}
		if arg == "--" {
			f.args = append(f.args, arguments[i+1:]...)
			break
		}

		body := strings.TrimPrefix(strings.TrimPrefix(arg, "-"), "-")
		name, value, hasValue := strings.Cut(body, "=")
		if flag, ok := f.flags[name]; ok {
			if err := f.set(flag, arg, value, hasValue, arguments, &i); err != nil {
				return err
			}
			continue
		}
		if g := f.group(body); g != nil {
			if err := g.Apply("-" + body); err != nil {
				return err
			}
			continue
		}
		if strings.HasPrefix(arg, "--") {
			return fmt.Errorf("unknown flag: %s", arg)
		}

		flag, ok := f.shorthands[arg[1:2]]
		if !ok {
			return fmt.Errorf("unknown shorthand flag: -%s", arg[1:2])
		}
		value, hasValue = arg[2:], len(arg) > 2
		if err := f.set(flag, arg, value, hasValue, arguments, &i); err != nil {
			return err
		}
	}
	return nil
}

func (f *FlagSet) set(flag *Flag, arg, value string, hasValue bool, arguments []string, i *int) error {
	if hasValue {
		return flag.Value.Set(value)
	}
	if _, isBool := flag.Value.(*boolValue); isBool {
		return flag.Value.Set("")
	}
	if *i+1 >= len(arguments) {
		return fmt.Errorf("flag needs an argument: %s", arg)
	}
	*i++
	return flag.Value.Set(arguments[*i])
}

func (f *FlagSet) group(body string) *FlagGroup {
	for i := range f.groups {
		if strings.HasPrefix(body, f.groups[i].Prefix) && len(body) > len(f.groups[i].Prefix) {
			return &f.groups[i]
		}
	}
	return nil
}

type App struct {
	Name        string
	Synopsis    string
	Description string
	Authors     []string
	Repository  string
	Since       int
	FlagSet     *FlagSet
	Action      func(args []string) error

	Stdout, Stderr io.Writer
}

func NewApp(name string) *App {
	return &App{Name: name, FlagSet: NewFlagSet(name), Stdout: os.Stdout, Stderr: os.Stderr}
}

func (a *App) Run(arguments []string) error {
	help := false
	a.FlagSet.Bool(&help, "help", "h", false, "Display this information.")

	if err := a.FlagSet.Parse(arguments); err != nil {
		fmt.Fprintf(a.Stderr, "%s: %v\n", a.Name, err)
		fmt.Fprintf(a.Stderr, "Usage: %s %s\nRun '%s --help' for all available options.\n", a.Name, a.Synopsis, a.Name)
		return err
	}
	if help {
		fmt.Fprint(a.Stdout, a.HelpPage(terminalWidth()))
		return nil
	}
	if a.Action != nil {
		return a.Action(a.FlagSet.Args())
	}
	return nil
}

// HelpPage renders the --help text wrapped to width columns.
func (a *App) HelpPage(width int) string {
	var sb strings.Builder
	indent1, indent2 := strings.Repeat(" ", 4), strings.Repeat(" ", 8)

	if len(a.Authors) > 0 {
		year := time.Now().Year()
		since := ""
		if a.Since != 0 && a.Since != year {
			since = fmt.Sprintf("%d-", a.Since)
		}
		fmt.Fprintf(&sb, "\n%sCopyright (c) %s%d: %s and contributors\n", indent1, since, year, strings.Join(a.Authors, ", "))
	}
	if a.Repository != "" {
		fmt.Fprintf(&sb, "%sFor more details refer to %s\n", indent1, a.Repository)
	}
	if a.Synopsis != "" {
		fmt.Fprintf(&sb, "\n%sSynopsis\n%s%s %s\n", indent1, indent2, a.Name, a.Synopsis)
	}
	if a.Description != "" {
		fmt.Fprintf(&sb, "\n%sDescription\n", indent1)
		for _, line := range wrapText(a.Description, width-len(indent2)) {
			fmt.Fprintf(&sb, "%s%s\n", indent2, line)
		}
	}

	flags := make([]*Flag, 0, len(a.FlagSet.flags))
	left := 0
	for _, flag := range a.FlagSet.flags {
		flags = append(flags, flag)
		left = max(left, len(formatFlag(flag)))
	}
	sort.Slice(flags, func(i, j int) bool { return flags[i].Name < flags[j].Name })
	for _, g := range a.FlagSet.groups {
		left = max(left, len("-"+g.Prefix+"no-<name>"))
		for _, e := range g.Entries {
			left = max(left, len(e.Name))
		}
	}

	if len(flags) > 0 {
		fmt.Fprintf(&sb, "\n%sOptions\n", indent1)
		for _, flag := range flags {
			right := ""
			if _, isBool := flag.Value.(*boolValue); !isBool && flag.DefValue != "" {
				right = "|" + flag.DefValue + "|"
			}
			formatEntry(&sb, indent2, width, left, formatFlag(flag), flag.Usage, right)
		}
	}

	for _, g := range a.FlagSet.groups {
		fmt.Fprintf(&sb, "\n%s%s\n", indent1, g.Name)
		fmt.Fprintf(&sb, "%s%-*s Enable a specific %s\n", indent2, left, "-"+g.Prefix+"<name>", strings.ToLower(strings.TrimSuffix(g.Name, "s")))
		fmt.Fprintf(&sb, "%s%-*s Disable a specific %s\n", indent2, left, "-"+g.Prefix+"no-<name>", strings.ToLower(strings.TrimSuffix(g.Name, "s")))
		entries := append([]GroupEntry(nil), g.Entries...)
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
		for _, e := range entries {
			right := "|-|"
			if e.Enabled {
				right = "|x|"
			}
			formatEntry(&sb, indent2, width, left, e.Name, e.Usage, right)
		}
	}
	return sb.String()
}

func formatFlag(flag *Flag) string {
	var sb strings.Builder
	_, isBool := flag.Value.(*boolValue)
	if flag.Shorthand != "" {
		fmt.Fprintf(&sb, "-%s, ", flag.Shorthand)
	}
	fmt.Fprintf(&sb, "--%s", flag.Name)
	if !isBool && flag.ExpectedType != "" {
		fmt.Fprintf(&sb, " <%s>", flag.ExpectedType)
	}
	return sb.String()
}

func formatEntry(sb *strings.Builder, indent string, width, left int, name, usage, right string) {
	avail := width - len(indent) - left - 1 - len(right) - 2
	if avail < 10 {
		avail = 10
	}
	lines := wrapText(usage, avail)
	if len(lines) == 0 {
		lines = []string{""}
	}
	if right != "" {
		fmt.Fprintf(sb, "%s%-*s %-*s  %s\n", indent, left, name, avail, lines[0], right)
	} else {
		fmt.Fprintf(sb, "%s%-*s %s\n", indent, left, name, lines[0])
	}
	for _, line := range lines[1:] {
		fmt.Fprintf(sb, "%s%s %s\n", indent, strings.Repeat(" ", left), line)
	}
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80
	}
	if width < 20 {
		return 20
	}
	return width
}

func wrapText(text string, maxWidth int) []string {
	words := strings.Fields(text)
	if maxWidth <= 0 || len(words) == 0 {
		return words
	}
	var lines []string
	var line strings.Builder
	for _, word := range words {
		if line.Len() > 0 && line.Len()+1+len(word) > maxWidth {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
