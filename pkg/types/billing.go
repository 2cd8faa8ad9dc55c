package types

// BillingCycle is the cadence at which a subscription charges.
type BillingCycle string

const (
	BillingCycleDaily     BillingCycle = "daily"
	BillingCycleWeekly    BillingCycle = "weekly"
	BillingCycleMonthly   BillingCycle = "monthly"
	BillingCycleQuarterly BillingCycle = "quarterly"
	BillingCycleYearly    BillingCycle = "yearly"
)

// Category classifies what a subscription is for.
type Category string

const (
	CategoryStreaming  Category = "streaming"
	CategoryMusic      Category = "music"
	CategorySoftware   Category = "software"
	CategoryGaming     Category = "gaming"
	CategoryFitness    Category = "fitness"
	CategoryEducation  Category = "education"
	CategoryUtilities  Category = "utilities"
	CategoryRent       Category = "rent"
	CategoryInsurance  Category = "insurance"
	CategoryMembership Category = "membership"
	CategoryOther      Category = "other"
)
