package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/phuslu/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/yaml.v2"

	"servicenow-sla-exporter/internal/servicenow"
	"servicenow-sla-exporter/internal/utils"
)

type Config struct {
	Listen       string   `yaml:"listen"`
	PollInterval string   `yaml:"poll_interval"`
	LogLevel     string   `yaml:"log_level"`
	InsecureTLS  bool     `yaml:"insecure_skip_verify"`
	Query        []string `yaml:"query"`
	WorkHours    struct {
		Start string `yaml:"start"`
		End   string `yaml:"end"`
	} `yaml:"work_hours"`
	Holidays     []string `yaml:"holidays"`
	HolidaysFile string   `yaml:"holidays_file"`
	SLADeadlines map[string]struct {
		Response string `yaml:"response"`
		Resolve  string `yaml:"resolve"`
	} `yaml:"sla_deadlines"`
}

var config Config

func loadConfig(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return yaml.NewDecoder(f).Decode(&config)
}

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/exporter.yaml"
	}
	if err := loadConfig(configPath); err != nil {
		log.Fatal().Err(err).Str("path", configPath).Msg("failed to load config")
	}
	if config.LogLevel != "" {
		log.DefaultLogger.Level = log.ParseLevel(config.LogLevel)
	}
	if config.Listen == "" {
		config.Listen = ":9100"
	}
	interval := 60 * time.Second
	if config.PollInterval != "" {
		d, err := time.ParseDuration(config.PollInterval)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid poll_interval")
		}
		interval = d
	}

	client, err := servicenow.NewClientFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("ServiceNow API environment not configured")
	}
	client.InsecureTLS = config.InsecureTLS

	holidays := config.Holidays
	if config.HolidaysFile != "" {
		fromFile, err := utils.LoadHolidaysFromFile(config.HolidaysFile)
		if err != nil {
			log.Fatal().Err(err).Str("path", config.HolidaysFile).Msg("failed to load holidays file")
		}
		holidays = append(holidays, fromFile...)
	}
	calendar, err := utils.NewBusinessCalendar(config.WorkHours.Start, config.WorkHours.End, holidays)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid work_hours configuration")
	}

	prometheus.MustRegister(ticketCount)
	prometheus.MustRegister(slaCompliance)

	// Periodic fetcher
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			updateMetrics(client, calendar)
			<-ticker.C
		}
	}()

	http.Handle("/metrics", promhttp.Handler())
	log.Info().Str("listen", config.Listen).Msg("exporter running")
	log.Fatal().Err(http.ListenAndServe(config.Listen, nil)).Msg("server exited")
}

// ServiceNow incident state codes.
func stateLabel(code string) string {
	switch code {
	case "1":
		return "New"
	case "2":
		return "In Progress"
	case "3":
		return "On Hold"
	case "6":
		return "Resolved"
	case "7":
		return "Closed"
	case "8":
		return "Canceled"
	default:
		return code
	}
}

func priorityLabel(code string) string {
	switch code {
	case "1":
		return "Critical"
	case "2":
		return "High"
	case "3":
		return "Moderate"
	case "4":
		return "Low"
	case "5":
		return "Planning"
	default:
		return code
	}
}

func urgencyLabel(code string) string {
	switch code {
	case "1":
		return "High"
	case "2":
		return "Medium"
	case "3":
		return "Low"
	default:
		return code
	}
}

func updateMetrics(client *servicenow.Client, calendar *utils.BusinessCalendar) {
	tickets, err := client.FetchTickets(context.Background(), servicenow.NewFilter(config.Query...))
	if err != nil {
		log.Error().Err(err).Msg("error fetching incidents")
		return
	}
	log.Info().Int("count", len(tickets)).Msg("updating metrics")

	ticketCount.Reset()
	slaCompliance.Reset()

	for _, t := range tickets {
		state := stateLabel(t.StringField("state"))
		prio := priorityLabel(t.StringField("priority"))
		urg := urgencyLabel(t.StringField("urgency"))
		ticketCount.WithLabelValues(
			state, prio, urg, t.StringField("category"), t.ReferenceField("assignment_group"),
		).Inc()

		var responseDeadline, resolveDeadline time.Duration
		if d, ok := config.SLADeadlines[strings.ToLower(prio)]; ok {
			responseDeadline, _ = time.ParseDuration(d.Response)
			resolveDeadline, _ = time.ParseDuration(d.Resolve)
		}
		if responseDeadline == 0 && resolveDeadline == 0 {
			continue
		}

		openedAt, _ := servicenow.ParseTime(t.StringField("opened_at"))
		workStart, _ := servicenow.ParseTime(t.StringField("work_start"))
		resolvedAt, _ := servicenow.ParseTime(t.StringField("resolved_at"))

		// RAW calculation
		ttoRaw := time.Duration(0)
		ttrRaw := time.Duration(0)
		if !workStart.IsZero() && !openedAt.IsZero() {
			ttoRaw = workStart.Sub(openedAt)
		}
		if !resolvedAt.IsZero() && !openedAt.IsZero() {
			ttrRaw = resolvedAt.Sub(openedAt)
		}
		recordCompliance(prio, urg, "raw", "response", responseDeadline, ttoRaw)
		recordCompliance(prio, urg, "raw", "resolve", resolveDeadline, ttrRaw)

		// BUSINESS-HOUR calculation
		ttoBH := time.Duration(0)
		ttrBH := time.Duration(0)
		if !workStart.IsZero() && !openedAt.IsZero() {
			ttoBH = calendar.Duration(openedAt, workStart)
		}
		if !resolvedAt.IsZero() && !openedAt.IsZero() {
			ttrBH = calendar.Duration(openedAt, resolvedAt)
		}
		recordCompliance(prio, urg, "business-hour", "response", responseDeadline, ttoBH)
		recordCompliance(prio, urg, "business-hour", "resolve", resolveDeadline, ttrBH)
	}
}

func recordCompliance(prio, urg, slaType, metric string, deadline, elapsed time.Duration) {
	if deadline <= 0 || elapsed <= 0 {
		return
	}
	comply := 0.0
	if elapsed <= deadline {
		comply = 1.0
	}
	slaCompliance.WithLabelValues(prio, urg, slaType, metric, "comply").Add(comply)
	slaCompliance.WithLabelValues(prio, urg, slaType, metric, "violate").Add(1.0 - comply)
}

// Prometheus metrics
var (
	ticketCount = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "servicenow_ticket_count",
			Help: "Number of incidents by state, priority, urgency, category, assignment_group.",
		},
		[]string{"state", "priority", "urgency", "category", "assignment_group"},
	)

	slaCompliance = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "servicenow_ticket_sla_compliance",
			Help: "SLA compliance by priority, urgency, sla_type, sla_metric, status.",
		},
		[]string{"priority", "urgency", "sla_type", "sla_metric", "status"},
	)
)
