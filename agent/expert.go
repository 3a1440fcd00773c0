package agent

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Expert represent a chat with a business expert.
type Expert struct {
	Name        string                       `json:"name"`
	Description string                       `json:"description"`
	ModelName   string                       `json:"model_name"`
	Config      *genai.GenerateContentConfig `json:"config"`
	Library     Library
	Logger      *zap.Logger
	chat        *genai.Chat
}

func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.ModelName, e.Config, nil)
	if err != nil {
		return err
	}
	e.chat = chat
	return nil
}

func (e *Expert) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// Ask is a simple wrapper on top of Chat.Send that answers the function calls
// the expert makes until it gives a real response.
func (e *Expert) Ask(ctx context.Context, parts ...*genai.Part) (*genai.Content, error) {
	if e.chat == nil {
		return nil, fmt.Errorf("expert %s is not started", e.Name)
	}
	resp, err := e.chat.Send(ctx, parts...)
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from expert %s", e.Name)
	}

	var calls []*genai.Part
	for _, p := range resp.Candidates[0].Content.Parts {
		if p.FunctionCall == nil {
			continue
		}
		if e.Library == nil {
			return nil, fmt.Errorf("expert %s doesn't know how to make function calls", e.Name)
		}
		e.logger().Debug("function call", zap.String("expert", e.Name), zap.String("function", p.FunctionCall.Name))
		// No possible error, errors are sent back in the response.
		calls = append(calls, &genai.Part{FunctionResponse: e.Library(ctx, p.FunctionCall)})
	}
	if len(calls) > 0 {
		return e.Ask(ctx, calls...)
	}
	return resp.Candidates[0].Content, nil
}

// Declaration returns the function declaration to ask this expert.
func (e *Expert) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        e.Name,
		Description: e.Description,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"question": {
					Type:        genai.TypeString,
					Description: "The question to ask the expert.",
				},
			},
			Required: []string{"question"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "Expert's response.",
		},
	}
}

// Call asks this expert the question found in args.
func (e *Expert) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	d := e.Declaration()

	arg0 := args[d.Parameters.Required[0]]
	question, ok := arg0.(string)
	if !ok {
		return errorResponse(id, d.Name, fmt.Errorf("invalid question type got %T, expected string", arg0))
	}

	response, err := e.Ask(ctx, &genai.Part{Text: question})
	if err != nil {
		return errorResponse(id, d.Name, fmt.Errorf("something went wrong while calling the expert: %w", err))
	}

	r := text(response)
	e.logger().Debug("expert answered", zap.String("expert", e.Name), zap.String("question", question), zap.String("answer", r))
	return outputResponse(id, d.Name, r)
}
