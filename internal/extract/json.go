package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/calvescott/ledgerflow/internal/common"
	"github.com/calvescott/ledgerflow/internal/model"
)

var jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)

// decodeStatement parses model output into a statement. The model should
// return strict JSON; code fences are stripped and the first JSON object
// is extracted when extra text appears anyway.
func decodeStatement(text string) (*model.Statement, error) {
	cleaned := stripCodeFences(text)

	obj := jsonObjectRe.FindString(cleaned)
	if obj == "" {
		return nil, fmt.Errorf("%w: no JSON object found", common.ErrBadModelOutput)
	}

	var stmt model.Statement
	decoder := json.NewDecoder(strings.NewReader(obj))
	decoder.UseNumber()
	if err := decoder.Decode(&stmt); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBadModelOutput, err)
	}
	return &stmt, nil
}

// stripCodeFences removes a surrounding ```json ... ``` wrapper when the
// model ignored the no-markdown instruction.
func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	if idx := strings.Index(s, "\n"); idx != -1 {
		s = s[idx+1:]
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
