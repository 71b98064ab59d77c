package individuals

import (
	"time"

	"github.com/diwise/veda-client/pkg/veda/types/values"
)

func V(property string, vals ...values.Value) IndividualDecoratorFunc {
	return func(i *Individual) { i.Add(property, vals...) }
}

func Type(classes ...string) IndividualDecoratorFunc {
	return func(i *Individual) {
		for _, c := range classes {
			i.Add(RdfType, values.URI(c))
		}
	}
}

func Label(text, lang string) IndividualDecoratorFunc {
	return V(RdfsLabel, values.Text(text, lang))
}

func Comment(text, lang string) IndividualDecoratorFunc {
	return V(RdfsComment, values.Text(text, lang))
}

func Text(property, text string) IndividualDecoratorFunc {
	return V(property, values.Str(text))
}

func Ref(property, uri string) IndividualDecoratorFunc {
	return V(property, values.URI(uri))
}

func Created(t time.Time) IndividualDecoratorFunc {
	return V(VsCreated, values.DateTime(t))
}

func Creator(uri string) IndividualDecoratorFunc {
	return Ref(VsCreator, uri)
}

func MemberOf(groups ...string) IndividualDecoratorFunc {
	return func(i *Individual) {
		for _, g := range groups {
			i.Add(VsMemberOf, values.URI(g))
		}
	}
}
