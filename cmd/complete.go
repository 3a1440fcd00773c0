package cmd

import (
	"github.com/etnz/bankreport"
	"github.com/etnz/bankreport/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

var (
	predictFormat = predict.Set{formatAuto, formatText, formatPretty}
	predictDate   = predict.Something
)

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	reportFlags := map[string]complete.Predictor{
		"d":      predictDate,
		"format": predictFormat,
	}

	sub := map[string]*complete.Command{
		"report": {Flags: reportFlags},
		"calendar": {Flags: map[string]complete.Predictor{
			"d":        predictDate,
			"exchange": predict.Set{"SSE", "SZSE"},
		}},
		"topic": {
			Flags: map[string]complete.Predictor{"format": predictFormat},
			Args:  predict.Set(topics()),
		},
		"assist": {
			Flags: map[string]complete.Predictor{"d": predictDate},
			Args:  predict.Nothing,
		},
		"help":     {Args: predict.Nothing},
		"flags":    {Args: predict.Nothing},
		"commands": {Args: predict.Nothing},
	}
	for _, s := range bankreport.AllSections {
		sub[s.String()] = &complete.Command{Flags: reportFlags}
	}

	return &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"config":    predict.Files("*.toml"),
			"token":     predict.Something,
			"log-level": predict.Set{"debug", "info", "warn", "error"},
		},
	}
}

func topics() []string {
	all, err := docs.GetAllTopics()
	if err != nil {
		return nil
	}
	return append(all, "readme", docs.All)
}
