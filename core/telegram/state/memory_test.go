package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryManagerLifecycle(t *testing.T) {
	mgr := NewMemoryManager(0)

	flow, step := mgr.Current(1)
	require.Equal(t, FlowNone, flow)
	require.Equal(t, StepNone, step)
	require.False(t, mgr.InProgress(1))

	mgr.Start(1, "checkout", "enter_name")
	require.True(t, mgr.InProgress(1))
	flow, step = mgr.Current(1)
	require.Equal(t, Flow("checkout"), flow)
	require.Equal(t, Step("enter_name"), step)

	mgr.SetField(1, "name", "Ann")
	mgr.Advance(1, "enter_phone")
	mgr.SetField(1, "phone", "+1-555-0100")

	flow, step = mgr.Current(1)
	require.Equal(t, Flow("checkout"), flow)
	require.Equal(t, Step("enter_phone"), step)

	fields := mgr.Complete(1)
	require.Equal(t, map[string]interface{}{"name": "Ann", "phone": "+1-555-0100"}, fields)

	flow, step = mgr.Current(1)
	require.Equal(t, FlowNone, flow)
	require.Equal(t, StepNone, step)
	require.False(t, mgr.InProgress(1))
}

func TestMemoryManagerStartReplacesSession(t *testing.T) {
	mgr := NewMemoryManager(0)

	mgr.Start(7, "checkout", "enter_name")
	mgr.SetField(7, "name", "Ann")

	mgr.Start(7, "add_category", "enter_name")
	flow, step := mgr.Current(7)
	require.Equal(t, Flow("add_category"), flow)
	require.Equal(t, Step("enter_name"), step)

	_, ok := mgr.Field(7, "name")
	require.False(t, ok, "fields of the replaced flow must not leak")
}

func TestMemoryManagerSetFieldWithoutSession(t *testing.T) {
	mgr := NewMemoryManager(0)

	mgr.SetField(5, "name", "ghost")
	require.False(t, mgr.InProgress(5))
	require.Nil(t, mgr.Complete(5))
}

func TestMemoryManagerCancel(t *testing.T) {
	mgr := NewMemoryManager(0)

	mgr.Start(3, "add_product", "enter_price")
	mgr.SetField(3, "name", "Lamp")
	mgr.Cancel(3)

	require.False(t, mgr.InProgress(3))
	require.Nil(t, mgr.Complete(3))
}

func TestMemoryManagerIsolatedPerUser(t *testing.T) {
	mgr := NewMemoryManager(0)

	mgr.Start(1, "checkout", "enter_name")
	mgr.Start(2, "add_product", "enter_price")

	flow, _ := mgr.Current(1)
	require.Equal(t, Flow("checkout"), flow)
	flow, _ = mgr.Current(2)
	require.Equal(t, Flow("add_product"), flow)

	mgr.Cancel(1)
	require.False(t, mgr.InProgress(1))
	require.True(t, mgr.InProgress(2))
}

func TestMemoryManagerTTLExpiry(t *testing.T) {
	mgr := NewMemoryManager(10 * time.Millisecond)

	mgr.Start(9, "checkout", "enter_name")
	require.True(t, mgr.InProgress(9))

	time.Sleep(25 * time.Millisecond)
	require.False(t, mgr.InProgress(9))
	flow, step := mgr.Current(9)
	require.Equal(t, FlowNone, flow)
	require.Equal(t, StepNone, step)
}
