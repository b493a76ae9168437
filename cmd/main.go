package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/RBeauty-BookingClient/internal/config"
	"github.com/m04kA/RBeauty-BookingClient/internal/domain"
	"github.com/m04kA/RBeauty-BookingClient/internal/integrations/salonapi"
	"github.com/m04kA/RBeauty-BookingClient/internal/service/appointments"
	"github.com/m04kA/RBeauty-BookingClient/internal/service/catalog"
	"github.com/m04kA/RBeauty-BookingClient/internal/session"
	"github.com/m04kA/RBeauty-BookingClient/internal/wizard"
	"github.com/m04kA/RBeauty-BookingClient/pkg/logger"
	"github.com/m04kA/RBeauty-BookingClient/pkg/metrics"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting RBeauty-BookingClient...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var metricsSrv *http.Server

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)

		r := mux.NewRouter()
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)

		metricsSrv = &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler: r,
		}

		go func() {
			log.Info("Prometheus metrics endpoint exposed at :%d%s", cfg.Metrics.Port, cfg.Metrics.Path)
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Metrics server failed: %v", err)
			}
		}()
	}

	// Сессия внедряется в HTTP клиент явно - токен не живет в глобальном состоянии
	sess := session.New()

	// Инициализируем клиент API салона
	var clientOpts []salonapi.Option
	if metricsCollector != nil {
		clientOpts = append(clientOpts, salonapi.WithTransport(metrics.NewRoundTripper(metricsCollector, nil)))
	}
	apiClient := salonapi.NewClient(cfg.API.BaseURL, cfg.APITimeout(), sess, log, clientOpts...)
	log.Info("Salon API client initialized (url=%s, timeout=%ds)", cfg.API.BaseURL, cfg.API.TimeoutSeconds)

	// Политика бронирования из конфигурации
	policy, err := cfg.BookingPolicy()
	if err != nil {
		log.Fatal("Invalid booking policy: %v", err)
	}
	log.Info("Booking policy: initial_status=%s, cancellation_window=%s, horizon=%d days",
		policy.InitialStatus, policy.CancellationWindow, policy.AdvanceBookingDays)

	// Инициализируем сервисы
	catalogSvc := catalog.NewService(apiClient, cfg.CatalogTTL(), log)
	appointmentsSvc := appointments.NewService(apiClient, policy, log)

	// Мастер записи
	bookingWizard := wizard.New(appointmentsSvc, apiClient, policy, log)

	app := &app{
		log:          log,
		session:      sess,
		apiClient:    apiClient,
		catalog:      catalogSvc,
		appointments: appointmentsSvc,
		wizard:       bookingWizard,
		in:           bufio.NewReader(os.Stdin),
	}

	// Завершение по сигналу
	ctx, cancel := context.WithCancel(context.Background())
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		cancel()
	}()

	app.run(ctx)

	log.Info("Shutting down...")

	// Останавливаем сервер метрик
	if metricsSrv != nil {
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			log.Error("Metrics server forced to shutdown: %v", err)
		}
	}

	log.Info("Stopped")
}

// app интерактивная оболочка вокруг мастера записи и сервисов
type app struct {
	log          *logger.Logger
	session      *session.Session
	apiClient    *salonapi.Client
	catalog      *catalog.Service
	appointments *appointments.Service
	wizard       *wizard.Wizard
	in           *bufio.Reader
}

func (a *app) run(ctx context.Context) {
	fmt.Println("RBeauty booking client. Commands: login, services, book, list, cancel, status, stats, quit")

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		fmt.Print("> ")
		line, err := a.in.ReadString('\n')
		if err != nil {
			return
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit":
			return
		case "login":
			a.login(ctx)
		case "services":
			a.showServices(ctx)
		case "book":
			a.book(ctx)
		case "list":
			a.list(ctx)
		case "cancel":
			a.cancel(ctx, fields[1:])
		case "status":
			a.updateStatus(ctx, fields[1:])
		case "stats":
			a.stats(ctx)
		default:
			fmt.Printf("unknown command %q\n", fields[0])
		}
	}
}

func (a *app) login(ctx context.Context) {
	email := a.prompt("email: ")
	password := a.prompt("password: ")

	result, err := a.apiClient.Login(ctx, email, password)
	if err != nil {
		fmt.Printf("login failed: %v\n", err)
		return
	}

	if err := a.session.SetToken(result.Token); err != nil {
		fmt.Printf("login failed: %v\n", err)
		return
	}

	fmt.Printf("welcome, %s (%s)\n", result.User.Name, result.User.Role)
}

func (a *app) showServices(ctx context.Context) {
	cat, err := a.catalog.GetCatalog(ctx)
	if err != nil {
		fmt.Printf("failed to load services: %v\n", err)
		return
	}

	categories := make([]string, 0, len(cat))
	for c := range cat {
		categories = append(categories, string(c))
	}
	sort.Strings(categories)

	for _, c := range categories {
		fmt.Printf("%s:\n", c)
		for _, svc := range cat[domain.ServiceCategory(c)] {
			marker := " "
			if !svc.IsActive {
				marker = "x"
			}
			fmt.Printf("  [%s] %s  %s — €%.2f, %d min\n", marker, svc.ID, svc.Name, svc.Price, svc.DurationMinutes)
		}
	}
}

// book проводит пользователя через все шаги мастера записи
func (a *app) book(ctx context.Context) {
	defer a.wizard.Reset()

	// Шаг 1: услуга
	cat, err := a.catalog.GetCatalog(ctx)
	if err != nil {
		fmt.Printf("failed to load services: %v\n", err)
		return
	}

	var services []domain.Service
	for _, group := range cat {
		for _, svc := range group {
			if svc.IsBookable() {
				services = append(services, svc)
			}
		}
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Name < services[j].Name })

	for i, svc := range services {
		fmt.Printf("%2d. %s (%s) — €%.2f, %d min\n", i+1, svc.Name, svc.Category, svc.Price, svc.DurationMinutes)
	}

	idx, ok := a.promptIndex("service #: ", len(services))
	if !ok {
		return
	}
	if err := a.wizard.SelectService(&services[idx]); err != nil {
		fmt.Printf("cannot select service: %v\n", err)
		return
	}

	// Шаг 2: дата. Закрытые дни показываются, но выключены.
	options := a.wizard.DateOptions()
	enabled := make([]wizard.DateOption, 0, len(options))
	for _, opt := range options {
		if opt.Enabled {
			fmt.Printf("%2d. %s %s\n", len(enabled)+1, opt.Date.Format(domain.DateFormat), opt.Date.Weekday())
			enabled = append(enabled, opt)
		} else {
			fmt.Printf("  . %s %s (%s)\n", opt.Date.Format(domain.DateFormat), opt.Date.Weekday(), opt.Reason)
		}
	}

	idx, ok = a.promptIndex("date #: ", len(enabled))
	if !ok {
		return
	}
	if err := a.wizard.SelectDate(enabled[idx].Date); err != nil {
		fmt.Printf("cannot select date: %v\n", err)
		return
	}

	// Шаг 3: время из свежего списка слотов
	slots, err := a.wizard.LoadSlots(ctx)
	if err != nil {
		fmt.Printf("failed to load slots: %v\n", err)
		return
	}
	if len(slots) == 0 {
		// Корректный бизнес-результат: на эту дату всё занято
		fmt.Println("no free slots on this date, try another day")
		return
	}

	for i, slot := range slots {
		fmt.Printf("%2d. %s\n", i+1, slot)
	}
	idx, ok = a.promptIndex("time #: ", len(slots))
	if !ok {
		return
	}
	if err := a.wizard.SelectTime(slots[idx]); err != nil {
		fmt.Printf("cannot select time: %v\n", err)
		return
	}

	// Шаг 4: подтверждение
	if notes := a.prompt("notes (optional): "); notes != "" {
		if err := a.wizard.SetNotes(notes); err != nil {
			fmt.Printf("invalid notes: %v\n", err)
			return
		}
	}

	draft := a.wizard.Draft()
	fmt.Printf("booking %s on %s at %s for €%.2f — confirm? [y/N] ",
		draft.Service.Name, draft.Date.Format(domain.DateFormat), draft.StartTime, draft.Service.Price)

	if answer, _ := a.in.ReadString('\n'); strings.TrimSpace(answer) != "y" {
		fmt.Println("cancelled")
		return
	}

	appt, err := a.wizard.Confirm(ctx)
	if err != nil {
		if errors.Is(err, appointments.ErrSlotNoLongerAvailable) {
			// Слот заняли, пока пользователь подтверждал - нужен новый запрос доступности
			fmt.Println("that slot was just taken, please pick another time")
			return
		}
		fmt.Printf("booking failed: %v\n", err)
		return
	}

	fmt.Printf("booked! %s %s–%s, status=%s\n",
		appt.Date.Format(domain.DateFormat), appt.StartTime, appt.EndTime, appt.Status)
}

func (a *app) list(ctx context.Context) {
	page, err := a.appointments.List(ctx, 1, domain.DefaultPageLimit)
	if err != nil {
		fmt.Printf("failed to load appointments: %v\n", err)
		return
	}

	if len(page.Appointments) == 0 {
		fmt.Println("no appointments yet")
		return
	}

	for i, appt := range page.Appointments {
		fmt.Printf("%2d. %s  %s %s–%s  %-10s €%.2f  %s\n",
			i+1, appt.ID, appt.Date.Format(domain.DateFormat),
			appt.StartTime, appt.EndTime, appt.Status, appt.Price, appt.ServiceName)
	}
	fmt.Printf("page %d/%d, total %d\n", page.CurrentPage, page.TotalPages, page.Total)
}

func (a *app) cancel(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: cancel <appointment-id>")
		return
	}

	appt, ok := a.findAppointment(ctx, args[0])
	if !ok {
		return
	}

	if _, err := a.appointments.Cancel(ctx, appt); err != nil {
		switch {
		case errors.Is(err, appointments.ErrCancellationWindowExceeded):
			fmt.Printf("too late to cancel: appointments can be cancelled up to %s before the start\n",
				a.appointments.Policy().CancellationWindow)
		case errors.Is(err, appointments.ErrCannotCancel):
			fmt.Printf("appointment in status %q cannot be cancelled\n", appt.Status)
		default:
			fmt.Printf("cancel failed: %v\n", err)
		}
		return
	}

	fmt.Println("appointment cancelled")
}

func (a *app) updateStatus(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Println("usage: status <appointment-id> <pending|confirmed|completed|cancelled|no_show>")
		return
	}

	newStatus, err := domain.ParseAppointmentStatus(args[1])
	if err != nil {
		fmt.Printf("invalid status: %v\n", err)
		return
	}

	appt, ok := a.findAppointment(ctx, args[0])
	if !ok {
		return
	}

	if _, err := a.appointments.UpdateStatus(ctx, appt, newStatus); err != nil {
		fmt.Printf("status update failed: %v\n", err)
		return
	}

	fmt.Printf("status updated: %s -> %s\n", appt.Status, newStatus)
}

func (a *app) stats(ctx context.Context) {
	stats, err := a.apiClient.GetDashboardStats(ctx)
	if err != nil {
		fmt.Printf("failed to load stats: %v\n", err)
		return
	}

	fmt.Printf("today: %d, this week: %d, clients: %d, month revenue: €%.2f, pending: %d\n",
		stats.TodayAppointments, stats.WeekAppointments, stats.TotalClients,
		stats.MonthRevenue, stats.PendingCount)
}

// findAppointment ищет запись по идентификатору среди записей пользователя
func (a *app) findAppointment(ctx context.Context, id string) (*domain.Appointment, bool) {
	for page := 1; ; page++ {
		result, err := a.appointments.List(ctx, page, domain.MaxPageLimit)
		if err != nil {
			fmt.Printf("failed to load appointments: %v\n", err)
			return nil, false
		}

		for _, appt := range result.Appointments {
			if appt.ID == id {
				return appt, true
			}
		}

		if !result.HasNext {
			fmt.Printf("appointment %q not found\n", id)
			return nil, false
		}
	}
}

func (a *app) prompt(label string) string {
	fmt.Print(label)
	line, _ := a.in.ReadString('\n')
	return strings.TrimSpace(line)
}

func (a *app) promptIndex(label string, max int) (int, bool) {
	raw := a.prompt(label)
	idx, err := strconv.Atoi(raw)
	if err != nil || idx < 1 || idx > max {
		fmt.Println("invalid choice")
		return 0, false
	}
	return idx - 1, true
}
