package syntax

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the AST to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

func toJSON(node Node) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *Program:
		return map[string]interface{}{
			"type": "Program",
			"pos":  n.pos.String(),
			"func": toJSON(n.Func),
		}

	case *FuncDecl:
		return map[string]interface{}{
			"type": "FuncDecl",
			"pos":  n.pos.String(),
			"name": n.Name,
			"body": toJSON(n.Body),
		}

	case *ReturnStmt:
		return map[string]interface{}{
			"type":   "ReturnStmt",
			"pos":    n.pos.String(),
			"result": toJSON(n.Result),
		}

	case *IntLit:
		return map[string]interface{}{
			"type":  "IntLit",
			"value": n.Value,
		}

	case *Operation:
		m := map[string]interface{}{
			"type": "Operation",
			"op":   n.Op.String(),
			"x":    toJSON(n.X),
		}
		if n.Y != nil {
			m["y"] = toJSON(n.Y)
		}
		return m

	case *ParenExpr:
		return map[string]interface{}{
			"type": "ParenExpr",
			"x":    toJSON(n.X),
		}
	}

	return map[string]interface{}{"type": "unknown"}
}
