package timeline

type EventType string

const (
	EventTypeCustomerCreated     EventType = "customer_created"
	EventTypeLeadSourceDetected  EventType = "lead_source_detected"
	EventTypeCampaignViewed      EventType = "campaign_viewed"
	EventTypeCampaignClicked     EventType = "campaign_clicked"
	EventTypeSocialLike          EventType = "social_like"
	EventTypeSocialComment       EventType = "social_comment"
	EventTypeMessageSent         EventType = "message_sent"
	EventTypeMessageReceived     EventType = "message_received"
	EventTypeCallLogged          EventType = "call_logged"
	EventTypeCallCompleted       EventType = "call_completed"
	EventTypeMeetingHeld         EventType = "meeting_held"
	EventTypeTaskCreated         EventType = "task_created"
	EventTypeTaskCompleted       EventType = "task_completed"
	EventTypeDealCreated         EventType = "deal_created"
	EventTypeDealStageChanged    EventType = "deal_stage_changed"
	EventTypeDealWon             EventType = "deal_won"
	EventTypeDealLost            EventType = "deal_lost"
	EventTypeNoteAdded           EventType = "note_added"
	EventTypeAutomationTriggered EventType = "automation_triggered"
	EventTypeAISuggestionUsed    EventType = "ai_suggestion_used"
	EventTypeActivityCompleted   EventType = "activity_completed"
)

// Category es el tag de filtro que expone la API (ver classify.go).
type Category string

const (
	CategoryAll        Category = "all"
	CategoryCustomers  Category = "customers"
	CategoryActivities Category = "activities"
	CategoryMessages   Category = "messages"
	CategoryDeals      Category = "deals"
	CategoryTasks      Category = "tasks"
	CategoryCampaigns  Category = "campaigns"
	CategoryNotes      Category = "notes"
)

// Source identifica de qué módulo CRUD salió el registro base.
type Source string

const (
	SourceActivities Source = "activities"
	SourceDeals      Source = "deals"
	SourceTasks      Source = "tasks"
	SourceContacts   Source = "contacts"
	SourceCampaigns  Source = "campaigns"
)
