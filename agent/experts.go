package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/bankreport"
	"github.com/etnz/bankreport/docs"
	"github.com/etnz/bankreport/renderer"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

func instruction(text string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: text}}}
}

// creates the facilitator
func newFacilitator(model string, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: instruction(`
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user follows a handful of Chinese bank stocks listed in Shanghai through a daily report.
			Figures come from the report first: ask the Analyst before anyone else.
			Only ask the NewsDesk for what the report cannot tell (news, events, context).

			Devise a plan of questions to ask to each experts and come up with the best response to the user's request.
			Quote figures with their unit (亿 for market values and amounts, % for ratios and changes).
		`),
		},
		Library: NewLibrary(experts),
	}
}

// NewNewsDesk returns an expert grounded on Google Search.
func NewNewsDesk(model string) *Expert {
	return &Expert{
		Name: "NewsDesk",
		Description: `The NewsDesk follows the Chinese banking sector and markets.
		Ask the NewsDesk whenever you need recent news or grounding information about a bank,
		a regulator decision or the Shanghai market.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: instruction(`
			You are a market journalist covering Chinese banks. You Leverage Google Search to
			ground your assertions in a solid truth, and you cite the date of the news you report.
			`),
		},
	}
}

// NewAnalyst returns an expert reading report r.
func NewAnalyst(model string, r *bankreport.Report, log *zap.Logger) *Expert {
	lib := []Function{ReadSection(r), ListInstruments(r)}

	system := `
	You are a financial analyst in charge of the bank stocks report.
	Use the Tools to read the report sections, never invent a figure that is not in the report.
	When a section reports that data is unavailable say so.
	`
	if guide, err := docs.GetTopic("report"); err == nil {
		system += "\nThis is how the report is built:\n\n" + guide
	}

	return &Expert{
		Name: "Analyst",
		Description: fmt.Sprintf(`The Analyst has read the bank stocks report generated on %s.
		It knows the valuation, the latest quotes, the dividends, the fundamentals and the year to date
		performance of the tracked banks. Ask the Analyst for any figure or comparison.`, r.Today),
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: instruction(system),
		},
		Library: NewLibrary(lib),
		Logger:  log,
	}
}

const readSectionName = "ReadSection"

// ReadSection returns the function rendering one section of r as markdown.
func ReadSection(r *bankreport.Report) *Func {
	names := make([]string, 0, len(r.Sections))
	for _, s := range r.Sections {
		names = append(names, s.String())
	}

	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        readSectionName,
			Description: "ReadSection returns one section of the bank stocks report as markdown tables.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"section": {
						Type:        genai.TypeString,
						Description: "The section to read.",
						Enum:        names,
					},
				},
				Required: []string{"section"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The section in markdown.",
			},
		},
		Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
			name, ok := args["section"].(string)
			if !ok {
				return errorResponse(id, readSectionName, fmt.Errorf("argument 'section' is not a string as expected but %T", args["section"]))
			}
			s, err := bankreport.ParseSection(name)
			if err != nil || !r.Includes(s) {
				return errorResponse(id, readSectionName, fmt.Errorf("unknown section %q, want one of %s", name, strings.Join(names, ", ")))
			}
			one := *r
			one.Sections = []bankreport.Section{s}
			return outputResponse(id, readSectionName, renderer.ReportMarkdown(&one))
		},
	}
}

const listInstrumentsName = "ListInstruments"

// ListInstruments returns the function listing the instruments of r.
func ListInstruments(r *bankreport.Report) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        listInstrumentsName,
			Description: "ListInstruments lists the tracked banks with their Tushare code and their Chinese name.",
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "One line per instrument: code and name.",
			},
		},
		Func: func(_ context.Context, id string, _ map[string]any) *genai.FunctionResponse {
			var b strings.Builder
			for _, in := range r.Registry {
				fmt.Fprintf(&b, "%s %s\n", in.ID, in.Name)
			}
			return outputResponse(id, listInstrumentsName, b.String())
		},
	}
}
