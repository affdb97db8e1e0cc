package services

// Services defined in this package:
// - AuthService: authentication, registration, password resets
// - UserService: admin user management and the staff roster
// - WorkflowService: request lifecycle (submit, edit, process, documents)
// - NotificationService: in-app notifications and notification emails
// - AnalyticsService: admin dashboard aggregates
// - OverdueService: daily overdue sweep
