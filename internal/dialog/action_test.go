package dialog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCallback_StaticTokens(t *testing.T) {
	cases := []struct {
		data string
		want Action
	}{
		{"back_main", BackToMain{}},
		{"show_doctors", ShowDoctors{}},
		{"show_services", ShowServices{}},
		{"about", ShowAbout{}},
		{"book", BeginBooking{}},
		{"confirm", ConfirmBooking{}},
		{"pay_online", SelectPayment{Method: PaymentOnline}},
		{"pay_offline", SelectPayment{Method: PaymentCard}},
		{"admin_panel", AdminPanel{}},
	}

	for _, tc := range cases {
		action, err := ParseCallback(tc.data)
		require.NoError(t, err, tc.data)
		require.Equal(t, tc.want, action, tc.data)
	}
}

func TestParseCallback_PrefixedTokens(t *testing.T) {
	action, err := ParseCallback("doc_3")
	require.NoError(t, err)
	require.Equal(t, SelectDoctor{DoctorID: 3}, action)

	action, err = ParseCallback("service_فیشیال")
	require.NoError(t, err)
	require.Equal(t, SelectService{Name: "فیشیال"}, action)

	action, err = ParseCallback("day_2024-03-02")
	require.NoError(t, err)
	require.Equal(t, SelectDate{Gregorian: "2024-03-02"}, action)

	action, err = ParseCallback("time_10:00")
	require.NoError(t, err)
	require.Equal(t, SelectTime{Slot: "10:00"}, action)
}

func TestParseCallback_RoundTripsEncoders(t *testing.T) {
	action, err := ParseCallback(doctorCallback(7))
	require.NoError(t, err)
	require.Equal(t, SelectDoctor{DoctorID: 7}, action)

	action, err = ParseCallback(serviceCallback("لیزر"))
	require.NoError(t, err)
	require.Equal(t, SelectService{Name: "لیزر"}, action)

	action, err = ParseCallback(dayCallback("2024-03-05"))
	require.NoError(t, err)
	require.Equal(t, SelectDate{Gregorian: "2024-03-05"}, action)

	action, err = ParseCallback(timeCallback("9:00"))
	require.NoError(t, err)
	require.Equal(t, SelectTime{Slot: "9:00"}, action)
}

func TestParseCallback_Unknown(t *testing.T) {
	for _, data := range []string{"", "nonsense", "doc_xyz", "pay_crypto"} {
		_, err := ParseCallback(data)
		require.ErrorIs(t, err, ErrUnknownAction, data)
	}
}
