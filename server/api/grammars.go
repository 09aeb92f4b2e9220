package api

import (
	"errors"
	"net/http"

	"github.com/dekarrin/llparse/internal/table"
	"github.com/dekarrin/llparse/server/dao"
	"github.com/dekarrin/llparse/server/result"
	"github.com/dekarrin/llparse/server/serr"
)

// GrammarResponse describes a stored grammar as returned by the API.
type GrammarResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Format       string `json:"format"`
	Terminals    int    `json:"terminals"`
	NonTerminals int    `json:"non_terminals"`
	HasConflicts bool   `json:"has_conflicts"`
}

func grammarResponse(g dao.Grammar) GrammarResponse {
	return GrammarResponse{
		ID:           g.ID.String(),
		Name:         g.Name,
		Format:       g.Format,
		Terminals:    g.Terminals,
		NonTerminals: g.NonTerminals,
		HasConflicts: g.HasConflicts,
	}
}

// UploadGrammarRequest is the body of a POST to /grammars.
type UploadGrammarRequest struct {
	Name   string `json:"name"`
	Format string `json:"format"`
	Source string `json:"source"`
}

// TableResponse describes a built LL(1) parsing table and any conflicts
// found while building it.
type TableResponse struct {
	Entries   []TableEntry     `json:"entries"`
	Conflicts []ConflictReport `json:"conflicts,omitempty"`
}

// TableEntry is one (non-terminal, lookahead) -> alternates cell.
type TableEntry struct {
	NonTerminal string   `json:"non_terminal"`
	Lookahead   string   `json:"lookahead"`
	Alternates  []string `json:"alternates"`
}

// ConflictReport describes one LL(1) table conflict.
type ConflictReport struct {
	NonTerminal string   `json:"non_terminal"`
	Lookahead   string   `json:"lookahead"`
	Alternates  []string `json:"alternates"`
}

func tableResponse(tbl table.Table, conflicts []table.Conflict) TableResponse {
	resp := TableResponse{}

	for _, head := range tbl.NonTerminals() {
		for _, col := range tbl.Columns() {
			cell := tbl.Get(head, col)
			if len(cell) == 0 {
				continue
			}
			alts := make([]string, len(cell))
			for i, alt := range cell {
				alts[i] = alt.String()
			}
			resp.Entries = append(resp.Entries, TableEntry{
				NonTerminal: head.String(),
				Lookahead:   col.String(),
				Alternates:  alts,
			})
		}
	}

	resp.Conflicts = conflictReports(conflicts)

	return resp
}

func conflictReports(conflicts []table.Conflict) []ConflictReport {
	var reports []ConflictReport
	for _, c := range conflicts {
		alts := make([]string, len(c.Alternates))
		for i, alt := range c.Alternates {
			alts[i] = alt.String()
		}
		reports = append(reports, ConflictReport{
			NonTerminal: c.NonTerminal.String(),
			Lookahead:   c.Terminal.String(),
			Alternates:  alts,
		})
	}
	return reports
}

// HTTPUploadGrammar returns a HandlerFunc that parses and stores a new
// grammar, reporting any LL(1) conflicts found while building its table.
func (api API) HTTPUploadGrammar() http.HandlerFunc {
	return api.httpEndpoint(api.epUploadGrammar)
}

func (api API) epUploadGrammar(req *http.Request) result.Result {
	upload := UploadGrammarRequest{}
	if err := parseJSON(req, &upload); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if upload.Source == "" {
		return result.BadRequest("source: property is empty or missing from request", "empty source")
	}
	if upload.Format == "" {
		upload.Format = "text"
	}

	rec, conflicts, err := api.Backend.UploadGrammar(req.Context(), upload.Name, upload.Format, upload.Source)
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	resp := struct {
		GrammarResponse
		Conflicts []ConflictReport `json:"conflicts,omitempty"`
	}{GrammarResponse: grammarResponse(rec), Conflicts: conflictReports(conflicts)}

	return result.Created(resp, "grammar '%s' uploaded", rec.Name)
}

// HTTPDeleteGrammar returns a HandlerFunc that deletes a stored grammar.
func (api API) HTTPDeleteGrammar() http.HandlerFunc {
	return api.httpEndpoint(api.epDeleteGrammar)
}

func (api API) epDeleteGrammar(req *http.Request) result.Result {
	id := requireIDParam(req)

	rec, err := api.Backend.DeleteGrammar(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError(err.Error())
	}

	return result.NoContent("grammar '%s' deleted", rec.Name)
}

// HTTPGetTable returns a HandlerFunc that builds and returns the LL(1)
// parsing table for a stored grammar.
func (api API) HTTPGetTable() http.HandlerFunc {
	return api.httpEndpoint(api.epGetTable)
}

func (api API) epGetTable(req *http.Request) result.Result {
	id := requireIDParam(req)

	tbl, conflicts, err := api.Backend.BuildTable(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.BadRequest(err.Error(), err.Error())
	}

	return result.OK(tableResponse(tbl, conflicts), "table built")
}

// ParseRequest is the body of a POST to /grammars/{id}/parse.
type ParseRequest struct {
	Input string `json:"input"`
}

// ParseResponse reports whether input was accepted by a stored grammar.
type ParseResponse struct {
	Accepted       bool     `json:"accepted"`
	Classification string   `json:"classification,omitempty"`
	Token          string   `json:"token,omitempty"`
	Stack          []string `json:"stack,omitempty"`
}

// HTTPParse returns a HandlerFunc that recognizes input against a stored
// grammar's table.
func (api API) HTTPParse() http.HandlerFunc {
	return api.httpEndpoint(api.epParse)
}

func (api API) epParse(req *http.Request) result.Result {
	id := requireIDParam(req)

	preq := ParseRequest{}
	if err := parseJSON(req, &preq); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	outcome, err := api.Backend.Parse(req.Context(), id, preq.Input)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.BadRequest(err.Error(), err.Error())
	}

	resp := ParseResponse{
		Accepted:       outcome.Accepted,
		Classification: outcome.Classification,
		Token:          outcome.Token,
		Stack:          outcome.Stack,
	}
	return result.OK(resp, "parse of grammar %s: accepted=%t", id, outcome.Accepted)
}

// AdvisoryResponse reports the table produced by an advisory rewrite.
type AdvisoryResponse struct {
	Note  string        `json:"note"`
	Table TableResponse `json:"table"`
}

// HTTPAdviseLeftRecursion returns a HandlerFunc that runs the left-recursion
// removal rewrite and reports the rewritten grammar's table.
func (api API) HTTPAdviseLeftRecursion() http.HandlerFunc {
	return api.httpEndpoint(api.epAdviseLeftRecursion)
}

func (api API) epAdviseLeftRecursion(req *http.Request) result.Result {
	id := requireIDParam(req)

	adv, err := api.Backend.AdviseLeftRecursion(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.BadRequest(err.Error(), err.Error())
	}

	return result.OK(AdvisoryResponse{Note: adv.Note, Table: tableResponse(adv.Table, adv.Conflicts)}, "advisory left-recursion removal computed")
}

// HTTPAdviseLeftFactor returns a HandlerFunc that runs the left-factoring
// rewrite and reports the rewritten grammar's table.
func (api API) HTTPAdviseLeftFactor() http.HandlerFunc {
	return api.httpEndpoint(api.epAdviseLeftFactor)
}

func (api API) epAdviseLeftFactor(req *http.Request) result.Result {
	id := requireIDParam(req)

	adv, err := api.Backend.AdviseLeftFactor(req.Context(), id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.BadRequest(err.Error(), err.Error())
	}

	return result.OK(AdvisoryResponse{Note: adv.Note, Table: tableResponse(adv.Table, adv.Conflicts)}, "advisory left-factoring computed")
}
