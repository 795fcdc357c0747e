package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/config"
	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/owners"
)

type parseOutput struct {
	Input    string                `json:"input"`
	Owners   []owners.Owner        `json:"owners"`
	Invalids []owners.InvalidEntry `json:"invalids"`
}

func main() {
	var (
		configPath = flag.String("config", "", "Optional YAML config with extra parser rules")
		lineMode   = flag.Bool("lines", false, "Treat each stdin line as a separate owner field")
		jsonOut    = flag.Bool("json", false, "Emit one JSON object per input instead of text")
		noColor    = flag.Bool("no-color", false, "Disable colored output")
	)
	flag.Parse()

	if *noColor {
		color.NoColor = true
	}

	parser, err := buildParser(*configPath)
	if err != nil {
		log.Fatal("Failed to build parser:", err)
	}

	inputs, err := collectInputs(flag.Args(), *lineMode)
	if err != nil {
		log.Fatal("Failed to read input:", err)
	}
	if len(inputs) == 0 {
		log.Fatal("No input. Pass an owner field as arguments or on stdin.")
	}

	encoder := json.NewEncoder(os.Stdout)
	for _, input := range inputs {
		res := parser.Parse(input)
		if *jsonOut {
			if err := encoder.Encode(parseOutput{Input: input, Owners: res.Owners, Invalids: res.Invalids}); err != nil {
				log.Fatal("Failed to encode result:", err)
			}
			continue
		}
		printResult(input, res)
	}
}

func buildParser(configPath string) (*owners.Parser, error) {
	if configPath == "" {
		return owners.NewDefault(), nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return owners.New(cfg.OwnerRules())
}

// collectInputs returns the owner fields to parse: the joined argv if
// present, otherwise stdin as one field or one field per line.
func collectInputs(args []string, lineMode bool) ([]string, error) {
	if len(args) > 0 {
		return []string{strings.Join(args, " ")}, nil
	}

	if lineMode {
		var inputs []string
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			inputs = append(inputs, line)
		}
		return inputs, scanner.Err()
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, nil
	}
	return []string{text}, nil
}

var (
	personColor  = color.New(color.FgGreen)
	companyColor = color.New(color.FgCyan)
	invalidColor = color.New(color.FgRed)
)

func printResult(input string, res owners.ParseResult) {
	fmt.Println(input)
	for _, o := range res.Owners {
		if o.Kind == owners.KindCompany {
			companyColor.Printf("  company  %s\n", o.CompanyName)
			continue
		}
		personColor.Printf("  person   %s\n", o.FullName())
	}
	for _, inv := range res.Invalids {
		invalidColor.Printf("  invalid  %s (%s)\n", inv.Raw, inv.Reason)
	}
}
