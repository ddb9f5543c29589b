package config

import "sort"

// Action type enumeration. Extending it is a deliberate schema change:
// add the constant here and a point value to the schedule.
const (
	ActionDailyFirstAccess = "DAILY_FIRST_ACCESS"
	ActionFinanceCreated   = "FINANCE_CREATED"
	ActionAgendaCreated    = "AGENDA_CREATED"
	ActionAgendaCompleted  = "AGENDA_COMPLETED"
	ActionAgendaAgent      = "AGENDA_AGENT"
	ActionContentCreated   = "CONTENT_CREATED"
	ActionContentFavorited = "CONTENT_FAVORITED"
	ActionStreak3          = "STREAK_3"
	ActionStreak7          = "STREAK_7"
)

// Achievement codes of the shipped catalogue.
const (
	AchievementPrimeirosPassos = "primeiros_passos"
	AchievementOrganizado      = "organizado"
	AchievementPontual         = "pontual"
	AchievementControlado      = "controlado"
	AchievementCriador         = "criador"
	AchievementLendario        = "lendario"
)

const defaultLegendaryThreshold = 10000

func defaultActionPoints() map[string]int {
	return map[string]int{
		ActionDailyFirstAccess: 10,
		ActionFinanceCreated:   20,
		ActionAgendaCreated:    15,
		ActionAgendaCompleted:  30,
		ActionAgendaAgent:      25,
		ActionContentCreated:   25,
		ActionContentFavorited: 5,
		ActionStreak3:          50,
		ActionStreak7:          100,
	}
}

func defaultAchievements(legendaryThreshold int) []AchievementDefinition {
	return []AchievementDefinition{
		{Code: AchievementPrimeirosPassos, Name: "Primeiros Passos", PointThreshold: 50},
		{Code: AchievementOrganizado, Name: "Organizado(a)", PointThreshold: 150},
		{Code: AchievementPontual, Name: "Pontual", PointThreshold: 200},
		{Code: AchievementControlado, Name: "Controlado(a)", PointThreshold: 200},
		{Code: AchievementCriador, Name: "Criador(a)", PointThreshold: 250},
		{Code: AchievementLendario, Name: "Lendário(a)", PointThreshold: legendaryThreshold},
	}
}

// applyGamificationDefaults fills the point schedule and catalogue when the
// config file does not override them, and keeps the catalogue sorted by
// ascending threshold so cascade evaluation order is stable.
func applyGamificationDefaults(c *AppConfig) {
	if c.LegendaryThreshold == 0 {
		c.LegendaryThreshold = defaultLegendaryThreshold
	}
	if len(c.ActionPoints) == 0 {
		c.ActionPoints = defaultActionPoints()
	}
	if len(c.Achievements) == 0 {
		c.Achievements = defaultAchievements(c.LegendaryThreshold)
	}
	sort.SliceStable(c.Achievements, func(i, j int) bool {
		return c.Achievements[i].PointThreshold < c.Achievements[j].PointThreshold
	})
	if c.DefaultTimezone == "" {
		c.DefaultTimezone = "UTC"
	}
	if c.SummaryRecentLimit == 0 {
		c.SummaryRecentLimit = 10
	}
	if c.SummaryCacheTTLSec == 0 {
		c.SummaryCacheTTLSec = 60
	}
}
