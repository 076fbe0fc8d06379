package registry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemStoreInsertGet(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	appt := Appointment{
		ReferenceID:   "APT-0001",
		PatientName:   "Asha Rao",
		ContactNumber: "+91 9876543210",
		Status:        StatusConfirmed,
		CreatedAt:     time.Now().UTC(),
	}
	require.NoError(t, store.Insert(ctx, appt))

	got, err := store.Get(ctx, "APT-0001")
	require.NoError(t, err)
	require.Equal(t, appt, *got)

	_, err = store.Get(ctx, "APT-0002")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemStoreRejectsDuplicateReference(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	appt := Appointment{ReferenceID: "APT-0001", PatientName: "Asha Rao"}
	require.NoError(t, store.Insert(ctx, appt))
	require.Error(t, store.Insert(ctx, appt))
}

func TestMemStoreListOrder(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	for _, ref := range []string{"APT-0001", "APT-0002", "APT-0003"} {
		require.NoError(t, store.Insert(ctx, Appointment{ReferenceID: ref}))
	}

	appts, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, appts, 3)
	for i, want := range []string{"APT-0001", "APT-0002", "APT-0003"} {
		require.Equal(t, want, appts[i].ReferenceID)
	}
}

func TestMemStoreListEmpty(t *testing.T) {
	store := NewMemStore()

	appts, err := store.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, appts)
}
