package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockledger-api/internal/domain"
)

// pathID lee :id como entero positivo.
func pathID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		ve := domain.NewValidationError()
		ve.Add("id", "debe ser un entero positivo")
		return 0, ve
	}
	return id, nil
}

// optInt lee el primer parámetro presente entre keys. Ausente → nil; no numérico → error en field.
func optInt(c *fiber.Ctx, ve *domain.ValidationError, field string, keys ...string) *int {
	for _, k := range keys {
		raw := strings.TrimSpace(c.Query(k))
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			ve.Add(field, "debe ser un entero")
			return nil
		}
		return &v
	}
	return nil
}

// multiQuery junta `key[]`, `key` repetidos y valores separados por coma.
func multiQuery(c *fiber.Ctx, key string) []string {
	args := c.Context().QueryArgs()
	var out []string
	for _, k := range []string{key + "[]", key} {
		for _, raw := range args.PeekMulti(k) {
			for _, part := range strings.Split(string(raw), ",") {
				if p := strings.TrimSpace(part); p != "" {
					out = append(out, p)
				}
			}
		}
	}
	return out
}

// queryAlias devuelve el primer parámetro no vacío entre keys.
func queryAlias(c *fiber.Ctx, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(c.Query(k)); v != "" {
			return v
		}
	}
	return ""
}
