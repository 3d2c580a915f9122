// Package idgen asigna ids de 64 bits ordenados por tiempo (snowflake).
// Dos escrituras en el mismo milisegundo no colisionan: el nodo lleva una
// secuencia propia.
package idgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
)

type Generator struct {
	node *snowflake.Node
}

// New crea un generador para el nodo indicado (0..1023).
func New(node int64) (*Generator, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("idgen: node %d: %w", node, err)
	}
	return &Generator{node: n}, nil
}

func (g *Generator) NextID() int64 {
	return g.node.Generate().Int64()
}

// ID es un id en el borde HTTP. Sale como string JSON porque un id de 64
// bits no cabe en un number de JavaScript; al entrar acepta string o number.
type ID int64

func (id ID) Int64() int64 { return int64(id) }

func (id ID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatInt(int64(id), 10) + `"`), nil
}

func (id *ID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*id = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("id must be an integer: %q", s)
	}
	*id = ID(n)
	return nil
}

// Ptr convierte un id opcional de entrada.
func (id *ID) Ptr() *int64 {
	if id == nil {
		return nil
	}
	v := int64(*id)
	return &v
}
