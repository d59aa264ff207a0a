package agent

import (
	"context"

	"github.com/oskarlin/depot"
	"github.com/oskarlin/depot/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// newFacilitator creates the expert in charge of the conversation.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert skills available from the Tools and ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to understand the performance of his portfolio: its value,
			its returns, and how it compares to the benchmark index.

			Devise a plan of questions to ask each expert and come up with the best response to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher is the expert grounding answers in current market news via
// search.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is an expert market researcher,
		very well aware of financial products, institutions and
		the latest news about companies and indices.
		Ask the Researcher whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in financial markets. You can search and find anything related to
			companies, indices, funds and markets. You leverage Google Search to ground your
			assertions, you can get the latest news, and you know how to relate them to the
			user's request.
				`}}},
		},
	}
}

// NewAnalyst is the expert with read access to the computed portfolio
// result. Its tools render the same reports the CLI commands show.
func NewAnalyst(result *depot.Result, bench *depot.BenchmarkResult) *Expert {
	lib := []Function{
		reportFunc("Summary",
			"Summary reports the portfolio's current value, capital in, simple return, XIRR, TWR, annualized TWR, realized profit and transaction costs. Includes the benchmark comparison and alpha when a benchmark is loaded.",
			func() string {
				stats, ok := result.Stats()
				if !ok {
					return "The portfolio has no history yet."
				}
				var bstats *depot.BenchmarkStats
				if bench != nil {
					bstats, _ = bench.Stats()
				}
				return renderer.SummaryMarkdown(stats, bstats)
			}),
		reportFunc("Holdings",
			"Holdings lists the currently held securities with their quantity, purchase price, last traded price and market value, plus the cash balance.",
			func() string {
				stats, ok := result.Stats()
				if !ok {
					return "The portfolio has no history yet."
				}
				return renderer.HoldingsMarkdown(stats)
			}),
		reportFunc("History",
			"History shows the portfolio valuation day by day: cash, net asset value, total value, cumulative capital in and the time-weighted return.",
			func() string { return renderer.HistoryMarkdown(result) }),
		reportFunc("TransactionLog",
			"TransactionLog shows every processed event in chronological order, with the fee and the realized profit of each trade.",
			func() string { return renderer.LogMarkdown(result.Events) }),
	}

	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. He has read access to the user's computed portfolio:
		valuation history, holdings, performance figures and the transaction log.
		Ask the Analyst anything about the user's own portfolio.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an analyst in charge of the user's portfolio figures.
				You know how to use the Tools to extract relevant information about the
				user's portfolio and performance. Pardon approximative language from the
				team and figure out what they meant.

				Use the available tools to answer about
				  - current holdings and cash
				  - valuation history
				  - performance figures and the benchmark comparison
				  - individual transactions and their fees
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// reportFunc wraps a zero-argument markdown report as a callable tool.
func reportFunc(name, description string, render func() string) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: description,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted report.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			return &genai.FunctionResponse{
				ID:       id,
				Name:     name,
				Response: map[string]any{"output": render()},
			}
		},
	}
}
