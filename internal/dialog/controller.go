package dialog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clinic-booking-bot/config"
	"clinic-booking-bot/internal/service"
	"clinic-booking-bot/internal/usecase"

	"github.com/sirupsen/logrus"
)

// Incoming is one user action delivered by a transport.
type Incoming struct {
	UserID   int64
	FullName string
	Action   Action
}

// Controller drives the booking dialogue: it loads the user's session,
// validates the action against the current state, reads/writes the stores
// through the usecases and answers with the next menu. Every error of the
// taxonomy is recovered here into a user-facing reply; nothing propagates
// to the transport as a fault.
type Controller struct {
	log      *logrus.Logger
	clinic   config.ClinicConfig
	booking  config.BookingConfig
	adminIDs map[int64]struct{}

	catalog  usecase.CatalogUsecase
	bookings usecase.BookingUsecase
	admin    usecase.AdminUsecase
	sessions *service.SessionService
	clock    Clock
	locker   *userLocker
}

func NewController(
	log *logrus.Logger,
	clinic config.ClinicConfig,
	booking config.BookingConfig,
	adminIDs []int64,
	catalog usecase.CatalogUsecase,
	bookings usecase.BookingUsecase,
	admin usecase.AdminUsecase,
	sessions *service.SessionService,
	clock Clock,
) *Controller {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	if clock == nil {
		clock = SystemClock()
	}
	return &Controller{
		log:      log,
		clinic:   clinic,
		booking:  booking,
		adminIDs: admins,
		catalog:  catalog,
		bookings: bookings,
		admin:    admin,
		sessions: sessions,
		clock:    clock,
		locker:   newUserLocker(log),
	}
}

// Stop shuts down the lock sweeper.
func (c *Controller) Stop() {
	c.locker.Stop()
}

// IsAdmin reports whether the user is on the fixed admin allow-list.
func (c *Controller) IsAdmin(userID int64) bool {
	_, ok := c.adminIDs[userID]
	return ok
}

// Handle processes one dialogue turn to completion. Turns of the same user
// are serialized; different users run concurrently.
func (c *Controller) Handle(ctx context.Context, in Incoming) Reply {
	unlock := c.locker.Lock(in.UserID)
	defer unlock()

	session, err := c.sessions.Get(ctx, in.UserID)
	if err != nil {
		return c.transientFailure()
	}

	switch act := in.Action.(type) {
	case Start:
		return c.handleStart(ctx, in, session)
	case BackToMain:
		return c.handleBackToMain(ctx, in, session)
	case ShowDoctors:
		return c.handleShowDoctors(ctx)
	case ShowServices:
		return c.handleShowServices(ctx)
	case ShowAbout:
		return c.handleShowAbout()
	case BeginBooking:
		return c.dateMenu("")
	case SelectDoctor:
		return c.handleSelectDoctor(ctx, in, session, act)
	case SelectService:
		return c.handleSelectService(ctx, in, session, act)
	case SelectDate:
		return c.handleSelectDate(ctx, in, session, act)
	case SelectTime:
		return c.handleSelectTime(ctx, in, session, act)
	case ConfirmBooking:
		return c.handleConfirm(ctx, in, session)
	case SelectPayment:
		return c.handleSelectPayment(ctx, in, session, act)
	case AdminPanel:
		return c.handleAdminPanel(ctx, in, session)
	case PhotoReceived:
		return c.handlePhotoReceived()
	default:
		c.log.Warnf("Unhandled action %T from user %d", act, in.UserID)
		return c.mainMenu(in.UserID, "منوی اصلی:")
	}
}

// --- main menu -------------------------------------------------------------

func (c *Controller) handleStart(ctx context.Context, in Incoming, session *service.BookingSession) Reply {
	session.State = service.StateIdle
	if err := c.sessions.Save(ctx, in.UserID, session); err != nil {
		return c.transientFailure()
	}

	greeting := fmt.Sprintf("🌸 خوش آمدید به %s\n🏥 %s\n\nلطفاً یک گزینه را انتخاب کنید:", c.clinic.Name, c.clinic.Address)
	return c.mainMenu(in.UserID, greeting)
}

// handleBackToMain returns to Idle from any state. Session selections are
// deliberately untouched so the user can go back and change one step.
func (c *Controller) handleBackToMain(ctx context.Context, in Incoming, session *service.BookingSession) Reply {
	session.State = service.StateIdle
	if err := c.sessions.Save(ctx, in.UserID, session); err != nil {
		return c.transientFailure()
	}
	return c.mainMenu(in.UserID, "منوی اصلی:")
}

func (c *Controller) mainMenu(userID int64, text string) Reply {
	reply := Reply{Text: text}

	if c.IsAdmin(userID) {
		reply.addRow(callbackChoice("⚙️ پنل مدیریت", cbAdminPanel))
	}
	reply.addRow(callbackChoice("📅 رزرو نوبت", cbBook))
	reply.addRow(callbackChoice("👨‍⚕️ پزشکان", cbShowDoctors))
	reply.addRow(callbackChoice("🧴 خدمات", cbShowServices))
	reply.addRow(callbackChoice("ℹ️ درباره کلینیک", cbAbout))
	if c.clinic.WhatsApp != "" {
		reply.addRow(linkChoice("📞 واتساپ", "https://wa.me/"+c.clinic.WhatsApp))
	}
	if c.clinic.Instagram != "" {
		reply.addRow(linkChoice("📷 اینستاگرام", c.clinic.Instagram))
	}

	return reply
}

// --- catalog browsing ------------------------------------------------------

func (c *Controller) handleShowDoctors(ctx context.Context) Reply {
	return c.doctorMenu(ctx, "👨‍⚕️ لیست پزشکان:")
}

// doctorMenu is rebuilt from the store on every render, so indices on a
// stale keyboard are detectable on the next selection.
func (c *Controller) doctorMenu(ctx context.Context, text string) Reply {
	doctors, err := c.catalog.ListDoctors(ctx)
	if err != nil {
		return c.transientFailure()
	}

	if doctors.Total == 0 {
		reply := Reply{Text: "⚠️ در حال حاضر پزشکی ثبت نشده است."}
		reply.addRow(callbackChoice("⬅ بازگشت", cbBackMain))
		return reply
	}

	reply := Reply{Text: text}
	for _, d := range doctors.Doctors {
		reply.addRow(callbackChoice(d.Label, doctorCallback(d.ID)))
	}
	reply.addRow(callbackChoice("⬅ بازگشت", cbBackMain))
	return reply
}

func (c *Controller) handleShowServices(ctx context.Context) Reply {
	return c.serviceMenu(ctx, "🧴 خدمات:")
}

func (c *Controller) serviceMenu(ctx context.Context, text string) Reply {
	services, err := c.catalog.ListServices(ctx)
	if err != nil {
		return c.transientFailure()
	}

	if services.Total == 0 {
		reply := Reply{Text: "⚠️ در حال حاضر خدمتی ثبت نشده است."}
		reply.addRow(callbackChoice("⬅ بازگشت", cbBackMain))
		return reply
	}

	reply := Reply{Text: text}
	for _, s := range services.Services {
		reply.addRow(callbackChoice(s.Name, serviceCallback(s.Name)))
	}
	reply.addRow(callbackChoice("⬅ بازگشت", cbBackMain))
	return reply
}

func (c *Controller) handleShowAbout() Reply {
	about := c.clinic.About
	if about == "" {
		about = fmt.Sprintf("🏥 %s\n📍 %s", c.clinic.Name, c.clinic.Address)
	}
	reply := Reply{Text: about}
	reply.addRow(callbackChoice("⬅ بازگشت", cbBackMain))
	return reply
}

// --- booking selections ----------------------------------------------------

func (c *Controller) handleSelectDoctor(ctx context.Context, in Incoming, session *service.BookingSession, act SelectDoctor) Reply {
	doctor, err := c.catalog.GetDoctor(ctx, act.DoctorID)
	if err != nil {
		if errors.Is(err, usecase.ErrDoctorNotFound) {
			return c.doctorMenu(ctx, "⚠️ این پزشک دیگر در دسترس نیست. لطفاً دوباره انتخاب کنید:")
		}
		return c.transientFailure()
	}

	session.DoctorLabel = &doctor.Label
	session.State = service.StateDoctorChosen
	if err := c.sessions.Save(ctx, in.UserID, session); err != nil {
		return c.transientFailure()
	}

	return c.serviceMenu(ctx, fmt.Sprintf("✅ پزشک انتخاب شد: %s\n\n🧴 حالا خدمت مورد نظر را انتخاب کنید:", doctor.Label))
}

func (c *Controller) handleSelectService(ctx context.Context, in Incoming, session *service.BookingSession, act SelectService) Reply {
	svc, err := c.catalog.GetServiceByName(ctx, act.Name)
	if err != nil {
		if errors.Is(err, usecase.ErrServiceNotFound) {
			return c.serviceMenu(ctx, "⚠️ این خدمت دیگر در دسترس نیست. لطفاً دوباره انتخاب کنید:")
		}
		return c.transientFailure()
	}

	session.ServiceName = &svc.Name
	session.State = service.StateServiceChosen
	if err := c.sessions.Save(ctx, in.UserID, session); err != nil {
		return c.transientFailure()
	}

	return c.dateMenu(fmt.Sprintf("✅ خدمت انتخاب شد: %s\n\n", svc.Name))
}

func (c *Controller) dateMenu(prefix string) Reply {
	reply := Reply{Text: prefix + "📅 لطفاً تاریخ را انتخاب کنید:"}
	for _, opt := range dateOptions(c.clock.Now(), c.booking.HorizonDays) {
		reply.addRow(callbackChoice(opt.Jalali, dayCallback(opt.Gregorian)))
	}
	reply.addRow(callbackChoice("⬅ بازگشت", cbBackMain))
	return reply
}

func (c *Controller) handleSelectDate(ctx context.Context, in Incoming, session *service.BookingSession, act SelectDate) Reply {
	jalali, err := jalaliForGregorian(act.Gregorian)
	if err != nil {
		return c.dateMenu("⚠️ تاریخ نامعتبر بود. ")
	}

	today := c.clock.Now().Format("2006-01-02")
	if act.Gregorian < today {
		return c.dateMenu("⚠️ این تاریخ گذشته است. ")
	}

	gregorian := act.Gregorian
	session.DateGregorian = &gregorian
	session.DateJalali = &jalali
	session.State = service.StateDateChosen
	if err := c.sessions.Save(ctx, in.UserID, session); err != nil {
		return c.transientFailure()
	}

	return c.timeMenu("")
}

func (c *Controller) timeMenu(prefix string) Reply {
	reply := Reply{Text: prefix + "⏰ لطفاً ساعت نوبت را انتخاب کنید:"}
	for _, slot := range timeSlots(c.booking.OpenHour, c.booking.CloseHour) {
		reply.addRow(callbackChoice(slot, timeCallback(slot)))
	}
	reply.addRow(callbackChoice("⬅ بازگشت", cbBackMain))
	return reply
}

func (c *Controller) handleSelectTime(ctx context.Context, in Incoming, session *service.BookingSession, act SelectTime) Reply {
	if !validSlot(act.Slot, c.booking.OpenHour, c.booking.CloseHour) {
		return c.timeMenu("⚠️ این ساعت خارج از ساعات کاری است. ")
	}

	slot := act.Slot
	session.TimeSlot = &slot
	session.State = service.StateTimeChosen
	if err := c.sessions.Save(ctx, in.UserID, session); err != nil {
		return c.transientFailure()
	}

	return c.confirmMenu(session)
}

func (c *Controller) confirmMenu(session *service.BookingSession) Reply {
	reply := Reply{Text: fmt.Sprintf(
		"لطفاً اطلاعات نوبت را بررسی کنید:\n\n👨‍⚕️ %s\n🧴 %s\n📅 %s\n⏰ %s",
		orUnset(session.DoctorLabel),
		orUnset(session.ServiceName),
		orUnset(session.DateJalali),
		orUnset(session.TimeSlot),
	)}
	reply.addRow(callbackChoice("✅ ثبت نوبت", cbConfirm))
	reply.addRow(callbackChoice("⬅ بازگشت", cbBackMain))
	return reply
}

func orUnset(field *string) string {
	if field == nil {
		return "—"
	}
	return *field
}

// --- confirm + payment -----------------------------------------------------

func (c *Controller) handleConfirm(ctx context.Context, in Incoming, session *service.BookingSession) Reply {
	_, err := c.bookings.Confirm(ctx, in.UserID, in.FullName, session)
	if err != nil {
		var incomplete *usecase.IncompleteSelectionError
		switch {
		case errors.As(err, &incomplete):
			reply := Reply{Text: "⚠️ اطلاعات نوبت کامل نیست. مراحل باقی‌مانده: " + persianSteps(incomplete.Missing)}
			reply.addRow(callbackChoice("📅 ادامه رزرو", cbBook))
			reply.addRow(callbackChoice("⬅ بازگشت", cbBackMain))
			return reply
		case errors.Is(err, usecase.ErrSlotTaken):
			return c.timeMenu("⚠️ این ساعت برای پزشک انتخابی پر شده است. ")
		default:
			return c.transientFailure()
		}
	}

	session.State = service.StatePaymentChosen
	if err := c.sessions.Save(ctx, in.UserID, session); err != nil {
		// The appointment is already durable; a session hiccup must not
		// block the payment menu.
		c.log.Warnf("Failed to save session after confirm for user %d: %+v", in.UserID, err)
	}

	reply := Reply{Text: "✅ نوبت شما ثبت شد.\n\nروش پرداخت را انتخاب کنید:"}
	reply.addRow(callbackChoice("💳 پرداخت آنلاین", cbPayOnline))
	reply.addRow(callbackChoice("🏦 کارت‌به‌کارت", cbPayCard))
	reply.addRow(callbackChoice("⬅ بازگشت", cbBackMain))
	return reply
}

func persianSteps(steps []string) string {
	names := map[string]string{
		service.StepDoctor:  "پزشک",
		service.StepService: "خدمت",
		service.StepDate:    "تاریخ",
		service.StepTime:    "ساعت",
	}
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		if name, ok := names[s]; ok {
			out = append(out, name)
		} else {
			out = append(out, s)
		}
	}
	return strings.Join(out, "، ")
}

func (c *Controller) handleSelectPayment(ctx context.Context, in Incoming, session *service.BookingSession, act SelectPayment) Reply {
	if session.State != service.StatePaymentChosen {
		return c.mainMenu(in.UserID, "⚠️ ابتدا نوبت خود را ثبت کنید.")
	}

	var reply Reply
	switch act.Method {
	case PaymentOnline:
		reply = Reply{Text: "💳 پرداخت آنلاین به‌زودی فعال می‌شود."}
	case PaymentCard:
		reply = Reply{Text: fmt.Sprintf(
			"💳 پرداخت کارت‌به‌کارت\n\nشماره کارت:\n%s\n\nبعد از واریز، عکس رسید ارسال شود.",
			c.clinic.CardNumber,
		)}
	default:
		return c.mainMenu(in.UserID, "منوی اصلی:")
	}
	reply.addRow(callbackChoice("⬅ بازگشت", cbBackMain))

	// The booking flow is complete; the session has served its purpose.
	if err := c.sessions.Clear(ctx, in.UserID); err != nil {
		c.log.Warnf("Failed to clear session for user %d: %+v", in.UserID, err)
	}

	return reply
}

// --- admin -----------------------------------------------------------------

// ErrNotAdmin marks an admin action attempted by a user outside the
// allow-list.
var ErrNotAdmin = errors.New("user is not on the admin allow-list")

func (c *Controller) requireAdmin(userID int64) error {
	if !c.IsAdmin(userID) {
		return ErrNotAdmin
	}
	return nil
}

// handleAdminPanel lists today's appointments. Non-admins are rejected
// before any store read happens.
func (c *Controller) handleAdminPanel(ctx context.Context, in Incoming, session *service.BookingSession) Reply {
	if err := c.requireAdmin(in.UserID); err != nil {
		c.log.Warnf("Rejected admin panel request from user %d: %+v", in.UserID, err)
		reply := Reply{Text: "⛔ شما دسترسی مدیریت ندارید."}
		reply.addRow(callbackChoice("⬅ بازگشت", cbBackMain))
		return reply
	}

	today := c.clock.Now().Format("2006-01-02")
	appointments, err := c.admin.ListAppointmentsForDate(ctx, today)
	if err != nil {
		return c.transientFailure()
	}

	session.State = service.StateAdminView
	if err := c.sessions.Save(ctx, in.UserID, session); err != nil {
		return c.transientFailure()
	}

	var b strings.Builder
	b.WriteString("📋 نوبت‌های امروز:\n\n")
	if appointments.Total == 0 {
		b.WriteString("⚠️ هیچ نوبتی ثبت نشده است.")
	} else {
		for _, a := range appointments.Appointments {
			fmt.Fprintf(&b, "👨‍⚕️ %s | 🧴 %s | ⏰ %s\n", a.DoctorLabel, a.ServiceName, a.TimeSlot)
		}
	}

	reply := Reply{Text: b.String()}
	reply.addRow(callbackChoice("⬅ بازگشت", cbBackMain))
	return reply
}

// --- misc ------------------------------------------------------------------

func (c *Controller) handlePhotoReceived() Reply {
	return Reply{Text: "رسید دریافت شد. نوبت شما تأیید شد 🌸"}
}

// transientFailure is the single user-facing shape of every storage error.
// Dialogue state is untouched on this path, so retrying is safe.
func (c *Controller) transientFailure() Reply {
	reply := Reply{Text: "⚠️ خطای موقتی رخ داد. لطفاً کمی بعد دوباره تلاش کنید."}
	reply.addRow(callbackChoice("⬅ بازگشت", cbBackMain))
	return reply
}
