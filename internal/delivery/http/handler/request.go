package handler

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// textValue accepts either a JSON string or a JSON number and keeps the
// text form, so body fields parse the same way as query parameters.
type textValue string

func (v *textValue) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*v = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*v = textValue(str)
		return nil
	}
	*v = textValue(s)
	return nil
}

func (v textValue) String() string {
	return strings.TrimSpace(string(v))
}

// Int returns 0 for blank or unparsable values.
func (v textValue) Int() int {
	n, err := strconv.Atoi(v.String())
	if err != nil {
		return 0
	}
	return n
}

// Int64 reports ok=false for blank values and err for unparsable ones.
func (v textValue) Int64() (n int64, ok bool, err error) {
	s := v.String()
	if s == "" {
		return 0, false, nil
	}
	n, err = strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

// bindQueryThenBody fills out from the query string and then overlays any
// JSON body, so body fields win.
func bindQueryThenBody(c fiber.Ctx, out any, fromQuery func(fiber.Ctx)) error {
	fromQuery(c)
	if len(c.Body()) == 0 {
		return nil
	}
	return c.Bind().JSON(out)
}

// parseJobID maps malformed ids to uuid.Nil, which never matches a row.
func parseJobID(c fiber.Ctx) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return uuid.Nil
	}
	return id
}
