package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	subscribed []string
	published  map[string]string
}

func (r *recorder) Subscribe(topic string) error {
	r.subscribed = append(r.subscribed, topic)
	return nil
}

func (r *recorder) Publish(topic, payload string) error {
	if r.published == nil {
		r.published = map[string]string{}
	}
	r.published[topic] = payload
	return nil
}

func testRegistry(t *testing.T) *Registry {
	r, err := NewRegistry(
		New("temp", Float(72.0), "F", Publish, "zk-env/temp"),
		New("o_light", Bool(false), "", Subscribe, "zk-env/o_light"),
		New("light", Bool(false), "", Publish, "zk-env/light"),
		New("o_auto", Bool(false), "", Subscribe, "zk-env/o_auto"),
	)
	require.NoError(t, err)
	return r
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry(
		New("a", Bool(false), "", Publish, "x/a"),
		New("b", Bool(false), "", Publish, "x/a"),
	)
	assert.Error(t, err)

	_, err = NewRegistry(
		New("a", Bool(false), "", Publish, "x/a"),
		New("a", Bool(false), "", Publish, "x/b"),
	)
	assert.Error(t, err)

	_, err = NewRegistry(New("a", nil, "", Publish, "x/a"))
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	r := testRegistry(t)
	assert.Equal(t, "temp", r.Lookup("zk-env/temp").Label)
	assert.Nil(t, r.Lookup("zk-env/nothing"))
	assert.Equal(t, "zk-env/light", r.ByLabel("light").Topic)
	assert.Equal(t, KindFloat, r.Kind("zk-env/temp"))
	assert.Equal(t, KindNone, r.Kind("zk-env/nothing"))
	assert.Len(t, r.Parameters(), 4)
}

func TestRegistrySet(t *testing.T) {
	r := testRegistry(t)
	assert.True(t, r.Set("zk-env/light", Bool(true)))
	assert.Equal(t, Bool(true), r.Lookup("zk-env/light").Value())
	assert.False(t, r.Set("zk-env/nothing", Bool(true)))
	assert.False(t, r.Set("zk-env/light", Float(1)))
}

func TestSubscribeAllOnce(t *testing.T) {
	r := testRegistry(t)
	rec := &recorder{}
	r.SubscribeAll(rec)
	r.SubscribeAll(rec)
	assert.Equal(t, []string{"zk-env/o_light", "zk-env/o_auto"}, rec.subscribed)
}

func TestPublishAll(t *testing.T) {
	r := testRegistry(t)
	rec := &recorder{}
	r.Set("zk-env/light", Bool(true))
	r.PublishAll(rec)
	assert.Equal(t, map[string]string{
		"zk-env/temp":  "72",
		"zk-env/light": "True",
	}, rec.published)
}
