package paxada

import "github.com/Rifhice/paxada/i18n"

// DefaultGeneric is the default type of allocated generic parameters.
const DefaultGeneric = "ObjectId"

// Option configures the assemblers.
type Option func(*options)

type options struct {
	defaultGeneric string
	translator     i18n.Translator
	routeID        int
}

// WithDefaultGeneric sets the default type of entity generic parameters.
func WithDefaultGeneric(t string) Option {
	return func(o *options) {
		if t != "" {
			o.defaultGeneric = t
		}
	}
}

// WithTranslator sets the translator used for validator messages.
func WithTranslator(tr i18n.Translator) Option {
	return func(o *options) { o.translator = tr }
}

// WithLanguage selects a built-in message language ("en", "fr").
func WithLanguage(lang string) Option {
	return func(o *options) { o.translator = i18n.Dict(lang) }
}

// WithRouteID sets the identifier recorded in RouteData.
func WithRouteID(id int) Option {
	return func(o *options) { o.routeID = id }
}

func newOptions(opts []Option) options {
	o := options{defaultGeneric: DefaultGeneric}
	for _, fn := range opts {
		fn(&o)
	}
	if o.translator == nil {
		o.translator = i18n.Default()
	}
	return o
}
