package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/gnana997/propschema/pkg/schema"
)

// printSchemaText prints a human-readable summary of every component in out,
// ordered by module then component name.
func printSchemaText(w io.Writer, out *schema.SchemaType) {
	modules := out.ModuleNames()
	if len(modules) == 0 {
		fmt.Fprintln(w, "No components found")
		return
	}

	first := true
	for _, moduleName := range modules {
		module := out.Modules[moduleName]
		for _, name := range module.ComponentNames() {
			if !first {
				fmt.Fprintln(w)
			}
			first = false
			printComponentText(w, moduleName, name, module.Components[name])
		}
	}
}

func printComponentText(w io.Writer, moduleName, name string, c schema.ComponentShape) {
	fmt.Fprintf(w, "%s  [%s]\n", name, moduleName)

	var flags []string
	if c.InterfaceOnly {
		flags = append(flags, "interfaceOnly")
	}
	if c.PaperComponentName != "" {
		flags = append(flags, "paper: "+c.PaperComponentName)
	}
	if c.PaperComponentNameDeprecated != "" {
		flags = append(flags, "paper (deprecated): "+c.PaperComponentNameDeprecated)
	}
	if len(c.ExcludedPlatforms) > 0 {
		flags = append(flags, "excluded: "+strings.Join(c.ExcludedPlatforms, ", "))
	}
	if len(flags) > 0 {
		fmt.Fprintf(w, "  %s\n", strings.Join(flags, "; "))
	}

	if len(c.ExtendsProps) > 0 {
		names := make([]string, len(c.ExtendsProps))
		for i, e := range c.ExtendsProps {
			names[i] = string(e.KnownTypeName)
		}
		fmt.Fprintf(w, "  extends: %s\n", strings.Join(names, ", "))
	}

	fmt.Fprintln(w)
	printPropsTable(w, c.Props)

	fmt.Fprintln(w)
	if len(c.Commands) == 0 {
		fmt.Fprintln(w, "Commands  (none)")
		return
	}
	names := make([]string, len(c.Commands))
	for i, cmd := range c.Commands {
		names[i] = cmd.Name
	}
	fmt.Fprintf(w, "Commands  %s\n", strings.Join(names, ", "))
}

// propRow is one line of the props table.
type propRow struct {
	name, typ, req, def, description string
}

func newPropRow(p schema.NamedShape) propRow {
	req := "yes"
	if p.Optional {
		req = "no"
	}
	typ, def := splitDefault(schema.Describe(p.TypeAnnotation))
	return propRow{name: p.Name, typ: typ, req: req, def: def, description: p.Description}
}

// splitDefault separates a described annotation "T = d" into type and
// default. Annotations without a default get "-".
func splitDefault(described string) (string, string) {
	if strings.HasPrefix(described, "{") || strings.HasPrefix(described, "Array<") {
		return described, "-"
	}
	if typ, def, ok := strings.Cut(described, " = "); ok {
		return typ, def
	}
	return described, "-"
}

// printPropsTable renders the props with dynamic column widths.
func printPropsTable(w io.Writer, props []schema.NamedShape) {
	if len(props) == 0 {
		fmt.Fprintln(w, "Props  (none)")
		return
	}

	fmt.Fprintln(w, "Props")

	rows := make([]propRow, len(props))
	nameW, typeW, defW := len("NAME"), len("TYPE"), len("DEFAULT")
	for i, p := range props {
		rows[i] = newPropRow(p)
		nameW = max(nameW, len(rows[i].name))
		typeW = max(typeW, len(rows[i].typ))
		defW = max(defW, len(rows[i].def))
	}

	sepLen := nameW + typeW + 5 + defW + 4
	fmt.Fprintf(w, "  %-*s  %-*s  %-3s  %-*s\n", nameW, "NAME", typeW, "TYPE", "REQ", defW, "DEFAULT")
	fmt.Fprintf(w, "  %s\n", strings.Repeat("─", sepLen))

	for _, r := range rows {
		line := fmt.Sprintf("  %-*s  %-*s  %-3s  %-*s", nameW, r.name, typeW, r.typ, r.req, defW, r.def)
		fmt.Fprintln(w, strings.TrimRight(line, " "))
		if r.description != "" {
			fmt.Fprintf(w, "  %s  %s\n", strings.Repeat(" ", nameW), r.description)
		}
	}
}
