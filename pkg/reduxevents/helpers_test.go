package reduxevents_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/reduxevents/pkg/reduxevents"
)

func TestDispatchEvent(t *testing.T) {
	h := newHarness()
	ev := reduxevents.MustNew(&reduxevents.Config{Name: "counter", Manager: counterManager()}, h.options()...)
	store := newTestStore(ev.CreateReducers())

	var nilEvent *reduxevents.Event
	var nilFormatter reduxevents.FormatterFunc
	var nilDispatch reduxevents.DispatchFunc

	tests := []struct {
		name    string
		ev      reduxevents.Formatter
		store   reduxevents.Store
		wantErr error
	}{
		{"nil event", nil, store, reduxevents.ErrMissingEvent},
		{"typed nil event", nilEvent, store, reduxevents.ErrMissingEvent},
		{"nil formatter", nilFormatter, store, reduxevents.ErrMissingFormatter},
		{"nil store", ev, nil, reduxevents.ErrMissingStore},
		{"nil dispatch", ev, nilDispatch, reduxevents.ErrMissingDispatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reduxevents.DispatchEvent(tt.ev, tt.store, nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("dispatches formatted action", func(t *testing.T) {
		out, err := reduxevents.DispatchEvent(ev, store, reduxevents.Data{"by": 1})
		require.NoError(t, err)

		action, ok := out.(reduxevents.Action)
		require.True(t, ok)
		assert.Equal(t, "COUNTER", action.Type)
		assert.Equal(t, reduxevents.State{"count": 1}, store.GetState()["counter"])
	})

	t.Run("formatter func and dispatch func", func(t *testing.T) {
		formatter := reduxevents.FormatterFunc(func(d reduxevents.Data) reduxevents.Action {
			return reduxevents.Action{Type: "CUSTOM", ExtraData: d}
		})
		var got reduxevents.Action
		dispatch := reduxevents.DispatchFunc(func(a reduxevents.Action) any {
			got = a
			return "done"
		})

		out, err := reduxevents.DispatchEvent(formatter, dispatch, reduxevents.Data{"k": "v"})
		require.NoError(t, err)
		assert.Equal(t, "done", out)
		assert.Equal(t, "CUSTOM", got.Type)
		assert.Equal(t, reduxevents.Data{"k": "v"}, got.ExtraData)
	})
}

func TestCurrentStateFromEvent(t *testing.T) {
	h := newHarness()
	ev := reduxevents.MustNew(&reduxevents.Config{Name: "counter", Manager: counterManager()}, h.options()...)

	_, err := reduxevents.CurrentStateFromEvent(nil, reduxevents.AppState{})
	assert.ErrorIs(t, err, reduxevents.ErrMissingEvent)

	_, err = reduxevents.CurrentStateFromEvent(ev, nil)
	assert.ErrorIs(t, err, reduxevents.ErrMissingAppState)

	state, err := reduxevents.CurrentStateFromEvent(ev, reduxevents.AppState{"counter": {"count": 3}})
	require.NoError(t, err)
	assert.Equal(t, reduxevents.State{"count": 3}, state)

	state, err = reduxevents.CurrentStateFromEvent(ev, reduxevents.AppState{})
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestCombineEventReducers(t *testing.T) {
	h := newHarness()

	list := reduxevents.MustNew(&reduxevents.Config{
		Name: "todos",
		Manager: &reduxevents.Manager{
			InitialState: reduxevents.State{"items": []string{}},
			OnDispatch: func(s reduxevents.State, a reduxevents.Action) reduxevents.State {
				item, _ := a.Get("item")
				items := append([]string{}, s["items"].([]string)...)
				return reduxevents.State{"items": append(items, item.(string))}
			},
		},
	}, h.options()...)
	reset := reduxevents.MustNew(&reduxevents.Config{
		Name:        "clearTodos",
		UseDataFrom: "todos",
		Manager: &reduxevents.Manager{
			OnDispatch: func(reduxevents.State, reduxevents.Action) reduxevents.State {
				return reduxevents.State{"items": []string{}}
			},
		},
	}, h.options()...)
	counter := reduxevents.MustNew(&reduxevents.Config{Name: "counter", Manager: counterManager()}, h.options()...)

	reducers, err := reduxevents.CombineEventReducers(reset, list, counter)
	require.NoError(t, err)
	assert.Len(t, reducers, 2)
	assert.Contains(t, reducers, "todos")
	assert.Contains(t, reducers, "counter")
	assert.NotContains(t, reducers, "clearTodos")

	store := newTestStore(reducers)
	assert.Equal(t, reduxevents.State{"items": []string{}}, store.GetState()["todos"])

	store.Dispatch(list.ToRedux(reduxevents.Data{"item": "a"}))
	store.Dispatch(list.ToRedux(reduxevents.Data{"item": "b"}))
	assert.Equal(t, reduxevents.State{"items": []string{"a", "b"}}, store.GetState()["todos"])

	store.Dispatch(reset.ToRedux(nil))
	assert.Equal(t, reduxevents.State{"items": []string{}}, store.GetState()["todos"])
}

func TestCombineEventReducers_SatellitesInOrder(t *testing.T) {
	h := newHarness()

	appendManager := func(tag string) *reduxevents.Manager {
		return &reduxevents.Manager{
			InitialState: reduxevents.State{"log": ""},
			OnDispatch: func(s reduxevents.State, _ reduxevents.Action) reduxevents.State {
				return reduxevents.State{"log": s["log"].(string) + tag}
			},
		}
	}

	base := reduxevents.MustNew(&reduxevents.Config{Name: "base", Manager: appendManager("b")}, h.options()...)
	first := reduxevents.MustNew(&reduxevents.Config{Name: "first", UseDataFrom: "base", Manager: appendManager("1")}, h.options()...)
	second := reduxevents.MustNew(&reduxevents.Config{Name: "second", UseDataFrom: "base", Manager: appendManager("2")}, h.options()...)

	reducers, err := reduxevents.CombineEventReducers(first, base, second)
	require.NoError(t, err)
	require.Len(t, reducers, 1)

	reduce := reducers["base"]
	assert.Equal(t, reduxevents.State{"log": "b"}, reduce(nil, base.ToRedux(nil)))
	assert.Equal(t, reduxevents.State{"log": "1"}, reduce(reduxevents.State{"log": ""}, first.ToRedux(nil)))
	assert.Equal(t, reduxevents.State{"log": "x2"}, reduce(reduxevents.State{"log": "x"}, second.ToRedux(nil)))
}

func TestCombineEventReducers_MissingBase(t *testing.T) {
	h := newHarness()

	orphan := reduxevents.MustNew(&reduxevents.Config{
		Name:        "orphan",
		UseDataFrom: "nowhere",
		Manager:     counterManager(),
	}, h.options()...)

	_, err := reduxevents.CombineEventReducers(orphan)
	require.Error(t, err)
	assert.ErrorIs(t, err, reduxevents.ErrEventNotFound)

	var nf *reduxevents.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "nowhere", nf.Name)
	assert.Equal(t, "orphan", nf.Referrer)
	assert.EqualError(t, err, "event nowhere not found (referenced by orphan)")
}

func TestCombineEventReducers_Empty(t *testing.T) {
	reducers, err := reduxevents.CombineEventReducers()
	require.NoError(t, err)
	assert.Empty(t, reducers)
}
