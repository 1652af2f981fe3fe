package req

import (
	"fmt"
	"net/url"
	"reflect"

	"github.com/gorilla/schema"
	"github.com/xy-planning-network/storefront"
)

// A Parser decodes and validates request payloads.
type Parser struct {
	decoder *schema.Decoder
	validator
}

func NewParser() *Parser {
	return &Parser{
		decoder:   newQueryParamDecoder(),
		validator: newValidator(),
	}
}

// ParseQueryParams decodes into a pointer to a struct the query param data in *http.Request.URL.Query.
// If successful, ParseQueryParams runs validation against the contents,
// returning an ErrNotValid if the data fails validation rules.
func (p *Parser) ParseQueryParams(params url.Values, structPtr any) error {
	if v := reflect.ValueOf(structPtr); v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("storefront/http/req: %w: ParseQueryParams called with %T", storefront.ErrBadAny, structPtr)
	}

	if err := p.decoder.Decode(structPtr, params); err != nil {
		return fmt.Errorf("storefront/http/req: failed decoding request query params: %w", translateDecoderError(err))
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("storefront/http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}
