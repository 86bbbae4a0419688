package dialog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Action is the closed set of inbound user actions. The compiler checks
// every dispatch site, so adding or removing an action is a build-breaking
// change instead of a silently dead string branch.
type Action interface {
	isAction()
}

type Start struct{}
type ShowDoctors struct{}
type ShowServices struct{}
type ShowAbout struct{}
type BeginBooking struct{}

type SelectDoctor struct {
	DoctorID int
}

type SelectService struct {
	Name string
}

type SelectDate struct {
	Gregorian string
}

type SelectTime struct {
	Slot string
}

type ConfirmBooking struct{}

type PaymentMethod string

const (
	PaymentOnline PaymentMethod = "online"
	PaymentCard   PaymentMethod = "card"
)

type SelectPayment struct {
	Method PaymentMethod
}

type AdminPanel struct{}
type BackToMain struct{}
type PhotoReceived struct{}

func (Start) isAction()         {}
func (ShowDoctors) isAction()   {}
func (ShowServices) isAction()  {}
func (ShowAbout) isAction()     {}
func (BeginBooking) isAction()  {}
func (SelectDoctor) isAction()  {}
func (SelectService) isAction() {}
func (SelectDate) isAction()    {}
func (SelectTime) isAction()    {}
func (ConfirmBooking) isAction(){}
func (SelectPayment) isAction() {}
func (AdminPanel) isAction()    {}
func (BackToMain) isAction()    {}
func (PhotoReceived) isAction() {}

// Callback tokens carried in chat keyboard buttons.
const (
	cbBackMain     = "back_main"
	cbShowDoctors  = "show_doctors"
	cbShowServices = "show_services"
	cbAbout        = "about"
	cbBook         = "book"
	cbConfirm      = "confirm"
	cbPayOnline    = "pay_online"
	cbPayCard      = "pay_offline"
	cbAdminPanel   = "admin_panel"

	cbDoctorPrefix  = "doc_"
	cbServicePrefix = "service_"
	cbDayPrefix     = "day_"
	cbTimePrefix    = "time_"
)

// ErrUnknownAction is returned for callback data no menu ever produced.
var ErrUnknownAction = errors.New("unknown callback action")

// ParseCallback decodes chat callback data into an Action.
func ParseCallback(data string) (Action, error) {
	switch data {
	case cbBackMain:
		return BackToMain{}, nil
	case cbShowDoctors:
		return ShowDoctors{}, nil
	case cbShowServices:
		return ShowServices{}, nil
	case cbAbout:
		return ShowAbout{}, nil
	case cbBook:
		return BeginBooking{}, nil
	case cbConfirm:
		return ConfirmBooking{}, nil
	case cbPayOnline:
		return SelectPayment{Method: PaymentOnline}, nil
	case cbPayCard:
		return SelectPayment{Method: PaymentCard}, nil
	case cbAdminPanel:
		return AdminPanel{}, nil
	}

	switch {
	case strings.HasPrefix(data, cbDoctorPrefix):
		id, err := strconv.Atoi(strings.TrimPrefix(data, cbDoctorPrefix))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAction, data)
		}
		return SelectDoctor{DoctorID: id}, nil
	case strings.HasPrefix(data, cbServicePrefix):
		return SelectService{Name: strings.TrimPrefix(data, cbServicePrefix)}, nil
	case strings.HasPrefix(data, cbDayPrefix):
		return SelectDate{Gregorian: strings.TrimPrefix(data, cbDayPrefix)}, nil
	case strings.HasPrefix(data, cbTimePrefix):
		return SelectTime{Slot: strings.TrimPrefix(data, cbTimePrefix)}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, data)
}

func doctorCallback(id int) string {
	return cbDoctorPrefix + strconv.Itoa(id)
}

func serviceCallback(name string) string {
	return cbServicePrefix + name
}

func dayCallback(gregorian string) string {
	return cbDayPrefix + gregorian
}

func timeCallback(slot string) string {
	return cbTimePrefix + slot
}
