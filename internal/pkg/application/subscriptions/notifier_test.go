package subscriptions

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	testutils "github.com/diwise/service-chassis/pkg/test/http"
	"github.com/diwise/service-chassis/pkg/test/http/expects"
	"github.com/diwise/service-chassis/pkg/test/http/response"
	"github.com/diwise/veda-client/pkg/veda/types/individuals"
	"github.com/matryer/is"
)

var Expects = testutils.Expects
var Returns = testutils.Returns

var method = expects.RequestMethod
var bodyContaining = expects.RequestBodyContaining

func TestSingleNotificationOnPut(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(
			is,
			method(http.MethodPost),
			bodyContaining(`"operation": "put"`, "doc:1"),
		),
		Returns(
			response.Code(http.StatusOK),
		),
	)
	defer s.Close()

	ctx := context.Background()
	n, _ := NewNotifier(ctx, s.URL())

	n.Start()

	doc, err := individuals.New("doc:1", individuals.Type("v-s:Document"))
	is.NoErr(err)

	n.IndividualsChanged(ctx, Change{Operation: OperationPut, OpID: 1, Data: []*individuals.Individual{doc}})

	n.Stop()

	is.Equal(s.RequestCount(), 1)
}

func TestNothingIsSentWhenNotStarted(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, expects.AnyInput()),
		Returns(response.Code(http.StatusOK)),
	)
	defer s.Close()

	ctx := context.Background()
	n, _ := NewNotifier(ctx, s.URL())

	n.IndividualsChanged(ctx, Change{Operation: OperationRemove, OpID: 2})
	n.Stop()

	is.Equal(s.RequestCount(), 0)
}

func TestChangesReportedWhileStoppingAreSentOrDropped(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, expects.AnyInput()),
		Returns(response.Code(http.StatusOK)),
	)
	defer s.Close()

	ctx := context.Background()
	n, _ := NewNotifier(ctx, s.URL())
	is.NoErr(n.Start())

	var wg sync.WaitGroup
	for w := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 10 {
				n.IndividualsChanged(ctx, Change{Operation: OperationAddTo, OpID: int64(w*10 + i)})
			}
		}()
	}

	is.NoErr(n.Stop())
	wg.Wait()

	sent := s.RequestCount()
	is.True(sent <= 40)

	n.IndividualsChanged(ctx, Change{Operation: OperationAddTo, OpID: 41})
	is.Equal(s.RequestCount(), sent) // nothing is sent after stop
}

func TestNotificationRoundTrip(t *testing.T) {
	is := is.New(t)

	doc, _ := individuals.New("doc:1", individuals.Label("Hello", "EN"))
	n := NewNotification(Change{Operation: OperationSetIn, OpID: 7, EventID: "ev-1", UserURI: "td:Alice", Data: []*individuals.Individual{doc}})

	b, err := json.Marshal(n)
	is.NoErr(err)

	parsed := &Notification{}
	is.NoErr(json.Unmarshal(b, parsed))

	is.Equal(parsed.ID, n.ID)
	is.Equal(parsed.Operation, OperationSetIn)
	is.Equal(parsed.OpID, int64(7))
	is.Equal(parsed.UserURI, "td:Alice")
	is.True(parsed.Data[0].Equal(doc))
}

func TestEmptyEndpointIsRejected(t *testing.T) {
	is := is.New(t)

	_, err := NewNotifier(context.Background(), "")
	is.True(err != nil)
}
