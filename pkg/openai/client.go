package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/samber/lo"
	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/remihq/remi/pkg/domain"
	"github.com/remihq/remi/pkg/persona"
	"github.com/remihq/remi/pkg/tools"
)

// maxToolRounds bounds the tool-call loop inside one turn.
const maxToolRounds = 5

type ToolFunction interface {
	Name() string
	Description() string
	Parameters() jsonschema.Definition
	Function() any
}

// Client is the adapter for everything the app asks of the model: the
// conversational turn with its function tools, content summarization, audio
// transcription and speech synthesis.
type Client struct {
	api      *openai.Client
	model    string
	persona  *persona.Persona
	tools    []ToolFunction
	recorder *tools.Recorder
}

func NewClient(token, model string, p *persona.Persona, recorder *tools.Recorder, toolFunctions []ToolFunction) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("token is empty")
	}
	for _, t := range toolFunctions {
		if t.Name() == "" || t.Function() == nil {
			return nil, fmt.Errorf("invalid tool function %q", t.Name())
		}
		if reflect.TypeOf(t.Function()).Kind() != reflect.Func {
			return nil, fmt.Errorf("tool function %q is not callable", t.Name())
		}
	}

	return &Client{
		api:      openai.NewClient(token),
		model:    model,
		persona:  p,
		tools:    toolFunctions,
		recorder: recorder,
	}, nil
}

// Converse runs one model exchange. The model may call the declared tools;
// their handlers record the chosen values, which are mirrored into the
// structured result alongside the final assistant text.
func (c *Client) Converse(ctx context.Context, req domain.TurnRequest) (domain.TurnResult, error) {
	c.recorder.Reset()

	userContent, err := buildUserContent(req)
	if err != nil {
		return domain.TurnResult{}, fmt.Errorf("building turn prompt: %w", err)
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: c.persona.SystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: userContent},
	}

	declaredTools := lo.Map(c.tools, func(t ToolFunction, _ int) openai.Tool {
		return openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Parameters(),
			},
		}
	})

	var aiResponse string
	for round := 0; round < maxToolRounds; round++ {
		resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    c.model,
			Messages: messages,
			Tools:    declaredTools,
		})
		if err != nil {
			return domain.TurnResult{}, fmt.Errorf("creating chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return domain.TurnResult{}, fmt.Errorf("no choices in completion response")
		}

		msg := resp.Choices[0].Message
		messages = append(messages, msg)

		if len(msg.ToolCalls) == 0 {
			aiResponse = msg.Content
			break
		}

		for _, call := range msg.ToolCalls {
			result, err := c.callTool(ctx, call)
			if err != nil {
				slog.WarnContext(ctx, "Tool call failed", "tool", call.Function.Name, "err", err)
				result = "Error: " + err.Error()
			}
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    result,
				Name:       call.Function.Name,
				ToolCallID: call.ID,
			})
		}
	}

	if aiResponse == "" {
		return domain.TurnResult{}, fmt.Errorf("%w: model produced no reply text", domain.ErrMalformedReply)
	}

	selectedID, command := c.recorder.Snapshot()
	return domain.TurnResult{
		AIResponse:        aiResponse,
		SelectedContentID: selectedID,
		MediaCommand:      command,
	}, nil
}

func buildUserContent(req domain.TurnRequest) (string, error) {
	available, err := json.MarshalIndent(req.AvailableContent, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling available content: %w", err)
	}

	content := fmt.Sprintf("The user's content list:\n%s\n", available)

	if req.SelectedItem != nil {
		selected, err := json.MarshalIndent(req.SelectedItem, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshaling selected item: %w", err)
		}
		content += fmt.Sprintf("\nThe currently selected item:\n%s\n", selected)
	} else {
		content += "\nNo item is currently selected.\n"
	}

	content += "\nUser: " + req.UserMessage
	return content, nil
}

// callTool dispatches one tool call to its registered handler. Handlers are
// func(ctx, <string args in Required order>) (string, error).
func (c *Client) callTool(ctx context.Context, call openai.ToolCall) (string, error) {
	tool, ok := lo.Find(c.tools, func(t ToolFunction) bool {
		return t.Name() == call.Function.Name
	})
	if !ok {
		return "", fmt.Errorf("tool not found: %q", call.Function.Name)
	}

	var parsedArgs map[string]any
	if err := json.Unmarshal([]byte(call.Function.Arguments), &parsedArgs); err != nil {
		return "", fmt.Errorf("parsing tool arguments: %w", err)
	}

	funcArgs := []reflect.Value{reflect.ValueOf(ctx)}
	for _, param := range tool.Parameters().Required {
		value, ok := parsedArgs[param].(string)
		if !ok {
			return "", fmt.Errorf("missing or non-string parameter %q for tool %q", param, tool.Name())
		}
		funcArgs = append(funcArgs, reflect.ValueOf(value))
	}

	handler := reflect.ValueOf(tool.Function())
	if handler.Type().NumIn() != len(funcArgs) {
		return "", fmt.Errorf("tool %q expects %d arguments, got %d", tool.Name(), handler.Type().NumIn(), len(funcArgs))
	}

	results := handler.Call(funcArgs)
	if len(results) != 2 {
		return "", fmt.Errorf("tool %q must return (string, error)", tool.Name())
	}

	result, _ := results[0].Interface().(string)
	if errVal := results[1].Interface(); errVal != nil {
		err, _ := errVal.(error)
		return result, err
	}
	return result, nil
}
