package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	urfave "github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/churnguard/churnguard/internal/model"
	"github.com/churnguard/churnguard/internal/pipeline"
	"github.com/churnguard/churnguard/internal/risk"
	"github.com/churnguard/churnguard/pkg/types"
)

func newScoreCmd() *urfave.Command {
	return &urfave.Command{
		Name:  "score",
		Usage: "Score one customer record from a YAML or JSON file",
		Flags: []urfave.Flag{
			&urfave.StringFlag{
				Name:     "model",
				Usage:    "Path to the model artifact",
				Required: true,
			},
			&urfave.StringFlag{
				Name:  "input",
				Usage: "Path to the customer record (YAML or JSON); - reads stdin. Omitted fields take form defaults",
				Value: "-",
			},
			&urfave.FloatFlag{
				Name:  "threshold",
				Usage: "Decision threshold in [0, 1]",
				Value: risk.DefaultDecisionThreshold,
			},
			&urfave.StringFlag{
				Name:  "format",
				Usage: "Output format [json, yaml]",
				Value: formatJSON,
			},
		},
		Action: runScore,
	}
}

// scoreReport is the printed result of the score command.
type scoreReport struct {
	Model             string             `json:"model" yaml:"model"`
	Version           string             `json:"version" yaml:"version"`
	Probability       float64            `json:"probability" yaml:"probability"`
	ProbabilityPct    string             `json:"probability_pct" yaml:"probability_pct"`
	Decision          types.Decision     `json:"decision" yaml:"decision"`
	RiskTier          types.RiskTier     `json:"risk_tier" yaml:"risk_tier"`
	RecommendedAction string             `json:"recommended_action" yaml:"recommended_action"`
	Threshold         float64            `json:"threshold" yaml:"threshold"`
	TenureBucket      types.TenureBucket `json:"tenure_bucket" yaml:"tenure_bucket"`
	TotalServices     int                `json:"total_services" yaml:"total_services"`
}

func runScore(ctx context.Context, cmd *urfave.Command) error {
	a, err := model.Load(cmd.String("model"))
	if err != nil {
		return err
	}

	rec, err := readRecord(cmd.String("input"), cmd.Root().Reader)
	if err != nil {
		return err
	}

	out, err := pipeline.Run(rec, a.Adapter(), cmd.Float("threshold"))
	if err != nil {
		return fmt.Errorf("score: %w", err)
	}

	res := out.Result
	return encode(cmd.Root().Writer, cmd.String("format"), scoreReport{
		Model:             a.Name,
		Version:           a.Version,
		Probability:       res.Probability,
		ProbabilityPct:    res.ProbabilityPercent(),
		Decision:          res.Decision,
		RiskTier:          res.RiskTier,
		RecommendedAction: res.RecommendedAction,
		Threshold:         res.Threshold,
		TenureBucket:      out.Features.TenureBucket,
		TotalServices:     out.Features.TotalServices,
	})
}

// readRecord decodes a record from path (or stdin when path is "-") over
// the form defaults. JSON input is accepted since it is valid YAML.
func readRecord(path string, stdin io.Reader) (types.CustomerRecord, error) {
	rec := types.DefaultCustomerRecord()

	var data []byte
	var err error
	if path == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return rec, fmt.Errorf("score: read input: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&rec); err != nil && !errors.Is(err, io.EOF) {
		return rec, fmt.Errorf("score: parse input: %w", err)
	}
	return rec, nil
}
