package agent

import (
	"context"
	"fmt"

	"github.com/etnz/rebalance"
	"github.com/etnz/rebalance/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
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

			Learn about the expert's skills that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to understand his portfolio: what he holds, how far it has
			drifted from its target allocation, and what trading it back into shape would cost in taxes.

			Devise a plan of questions to ask each expert and come up with the best response to the
			user's request. The user will assume you know his tickers, check the portfolio first.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst creates the market-analyst expert, grounded with search.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is an expert market analyst,
		very well aware of financial products and institutions and of
		the latest news about funds and companies.
		Ask the Analyst whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert market analyst. You can search and find anything related to
			financial institutions, companies, markets and funds. You leverage Google Search
			to ground your assertions in solid truth, and you know how to relate the latest
			news to the user's request.
				`}}},
		},
	}
}

// NewAccountant creates the expert in charge of the user's ledger. It reads
// the ledger through the given loader and values it with the given provider.
func NewAccountant(loadLedger func() (*rebalance.Ledger, error), provider rebalance.PriceProvider) *Expert {
	lib := accountantLibrary(loadLedger, provider)

	return &Expert{
		Name: "Accountant",
		Description: `This is the Accountant. He is in charge of reading the user's portfolio ledger.
		He can report holdings, tax lots, realized gains, and preview the trades a rebalance would make.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an accountant in charge of the user's portfolio ledger.
				You know how to use the Tools to extract relevant information about the
				user's portfolio. You are part of a team of experts; yours is everything
				recorded in the ledger. Pardon their approximative language and figure
				out what they meant.

				Use the available tools for information about the user's portfolio
				  - holdings and their market value
				  - open tax lots and realized gains per security
				  - the trades a rebalance would recommend, with their tax impact
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func failure(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func success(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": output,
		},
	}
}

// accountantLibrary builds the accountant's tools over the ledger loader and
// price provider.
func accountantLibrary(loadLedger func() (*rebalance.Ledger, error), provider rebalance.PriceProvider) []Function {

	snapshot := func() (*rebalance.Portfolio, rebalance.PriceMap, error) {
		ledger, err := loadLedger()
		if err != nil {
			return nil, nil, fmt.Errorf("could not load ledger: %w", err)
		}
		p, err := ledger.Portfolio()
		if err != nil {
			return nil, nil, fmt.Errorf("could not replay ledger: %w", err)
		}
		prices, err := provider.Prices(p.Tickers())
		if err != nil {
			return nil, nil, fmt.Errorf("could not fetch prices: %w", err)
		}
		return p, prices, nil
	}

	holdings := &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Holdings",
			Description: `Holdings lists all securities in the portfolio with their ticker, name,
			asset class, position size, current price and market value, plus the cash balance.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of the portfolio's holdings.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			p, prices, err := snapshot()
			if err != nil {
				return failure(id, "Holdings", err)
			}
			return success(id, "Holdings", renderer.HoldingsMarkdown(p, prices))
		},
	}

	lots := &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Lots",
			Description: `Lots reports the tax-lot state of one security: the lots still open with
			their cost basis, and the realized gains history.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"ticker": {
						Type:        genai.TypeString,
						Description: "The ticker of the security, as declared in the ledger.",
					},
				},
				Required: []string{"ticker"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "Markdown tables of the security's open lots and realized gains.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			ticker, ok := args["ticker"].(string)
			if !ok {
				return failure(id, "Lots", fmt.Errorf("argument 'ticker' is not a string but %T", args["ticker"]))
			}
			ledger, err := loadLedger()
			if err != nil {
				return failure(id, "Lots", err)
			}
			p, err := ledger.Portfolio()
			if err != nil {
				return failure(id, "Lots", err)
			}
			report, err := p.NewLotReport(ticker)
			if err != nil {
				return failure(id, "Lots", err)
			}
			return success(id, "Lots", renderer.LotsMarkdown(report)+"\n"+renderer.GainsMarkdown(report))
		},
	}

	preview := &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "RebalancePreview",
			Description: `RebalancePreview compares the portfolio to its target allocation and
			returns the recommended trades, including the tax impact of every sale, lot by lot.
			It recommends only, nothing is executed or written.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted rebalance report with allocations, drift and trades.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			p, prices, err := snapshot()
			if err != nil {
				return failure(id, "RebalancePreview", err)
			}
			report, err := p.Rebalance(prices)
			if err != nil {
				return failure(id, "RebalancePreview", err)
			}
			return success(id, "RebalancePreview", renderer.RebalanceMarkdown(report))
		},
	}

	return []Function{holdings, lots, preview}
}
