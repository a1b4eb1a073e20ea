package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/plotterkit/pathclip"
	"github.com/tdewolff/argp"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/svg"
)

type Clip struct {
	Clip      string  `short:"c" desc:"Clip path data in SVG path syntax, or a file containing it"`
	Invert    bool    `short:"i" desc:"Keep the parts outside the clip region"`
	Rule      string  `short:"r" default:"evenodd" desc:"Fill rule: evenodd or nonzero"`
	Tolerance float64 `short:"t" default:"0" desc:"Coincidence tolerance, 1e-6 when zero"`
	Output    string  `short:"o" desc:"Output file, standard output when empty"`
	SVG       bool    `desc:"Wrap the result in a minified SVG document"`
	Input     string  `index:"0" desc:"Subject path data in SVG path syntax, or a file containing it"`
}

func main() {
	root := argp.NewCmd(&Clip{}, "Clip open paths against a closed region")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Clip) Run() error {
	if cmd.Input == "" || cmd.Clip == "" {
		return argp.ShowUsage
	}

	subject, err := pathclip.ParseSVGPath(pathData(cmd.Input))
	if err != nil {
		return fmt.Errorf("subject path: %w", err)
	}
	clip, err := pathclip.ParseSVGPath(pathData(cmd.Clip))
	if err != nil {
		return fmt.Errorf("clip path: %w", err)
	}

	var rule pathclip.FillRule
	switch strings.ToLower(cmd.Rule) {
	case "evenodd":
		rule = pathclip.EvenOdd
	case "nonzero":
		rule = pathclip.NonZero
	default:
		return fmt.Errorf("unknown fill rule: %s", cmd.Rule)
	}

	clipper := pathclip.Clipper{
		FillRule:  rule,
		Invert:    cmd.Invert,
		Tolerance: cmd.Tolerance,
	}
	result, err := clipper.Clip(subject, clip)
	if err != nil {
		return err
	}

	var sb strings.Builder
	if cmd.SVG {
		bounds := subject.Bounds().Union(clip.Bounds())
		fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%v %v %v %v">`,
			bounds.X0, bounds.Y0, bounds.W(), bounds.H())
		for _, p := range result {
			fmt.Fprintf(&sb, `<path d="%s" fill="none" stroke="black"/>`, p)
		}
		sb.WriteString(`</svg>`)
	} else {
		for _, p := range result {
			sb.WriteString(p.String())
			sb.WriteByte('\n')
		}
	}

	out := sb.String()
	if cmd.SVG {
		m := minify.New()
		m.AddFunc("image/svg+xml", svg.Minify)
		if out, err = m.String("image/svg+xml", out); err != nil {
			return err
		}
	}

	if cmd.Output == "" {
		fmt.Println(out)
		return nil
	}
	return os.WriteFile(cmd.Output, []byte(out), 0644)
}

// pathData returns the contents of arg when it names an existing file, and
// arg itself otherwise.
func pathData(arg string) string {
	if data, err := os.ReadFile(arg); err == nil {
		return string(data)
	}
	return arg
}
