// Package templates ships the built-in form template catalog. A
// template is a ready-made field sequence a user can start a draft
// from instead of an empty canvas.
package templates

import "github.com/formwave/formwave/model"

type Theme struct {
	PrimaryColor    string `json:"primaryColor"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
	AccentColor     string `json:"accentColor"`
}

type Template struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Fields      []model.Field `json:"fields"`
	Theme       Theme         `json:"theme"`
}

func field(id string, t model.FieldType, label string) model.Field {
	return model.Field{ID: id, Type: t, Label: label, Styles: model.DefaultStyles()}
}

func required(f model.Field) model.Field {
	f.Required = true
	return f
}

func withPlaceholder(f model.Field, placeholder string) model.Field {
	f.Placeholder = placeholder
	return f
}

func withOptions(f model.Field, options ...string) model.Field {
	f.Options = options
	return f
}

var catalog = []Template{
	{
		ID:          "contact",
		Title:       "Contact Form",
		Description: "A simple contact form with name, email, and message fields.",
		Category:    "Business",
		Fields: []model.Field{
			required(withPlaceholder(field("name", model.FieldText, "Full Name"), "John Doe")),
			required(withPlaceholder(field("email", model.FieldEmail, "Email Address"), "john@example.com")),
			withPlaceholder(field("phone", model.FieldText, "Phone Number"), "(123) 456-7890"),
			required(withPlaceholder(field("message", model.FieldTextarea, "Message"), "How can we help you?")),
		},
		Theme: Theme{"#4f46e5", "#ffffff", "#111827", "#818cf8"},
	},
	{
		ID:          "customer-feedback",
		Title:       "Customer Feedback",
		Description: "Collect detailed feedback from customers about your products or services.",
		Category:    "Feedback",
		Fields: []model.Field{
			withPlaceholder(field("name", model.FieldText, "Name"), "Your name"),
			required(withPlaceholder(field("email", model.FieldEmail, "Email"), "Your email")),
			required(withOptions(field("product", model.FieldSelect, "Which product are you providing feedback for?"),
				"Product A", "Product B", "Product C", "Service X", "Service Y")),
			required(withOptions(field("rating", model.FieldRadio, "How would you rate your experience?"),
				"1", "2", "3", "4", "5")),
			withPlaceholder(field("improvements", model.FieldTextarea, "What could we improve?"), "Share your suggestions..."),
			withOptions(field("recommend", model.FieldRadio, "Would you recommend us to others?"), "Yes", "No", "Maybe"),
		},
		Theme: Theme{"#8b5cf6", "#f5f3ff", "#1e1b4b", "#c4b5fd"},
	},
	{
		ID:          "event-registration",
		Title:       "Event Registration",
		Description: "A comprehensive form for event registrations.",
		Category:    "Events",
		Fields: []model.Field{
			required(field("name", model.FieldText, "Full Name")),
			required(field("email", model.FieldEmail, "Email Address")),
			field("company", model.FieldText, "Company/Organization"),
			field("jobTitle", model.FieldText, "Job Title"),
			required(withOptions(field("ticketType", model.FieldSelect, "Ticket Type"),
				"General Admission", "VIP", "Student")),
			withOptions(field("sessions", model.FieldCheckbox, "Which sessions would you like to attend?"),
				"Keynote", "Workshop A", "Workshop B", "Networking Lunch", "Panel Discussion"),
			field("dietaryRestrictions", model.FieldTextarea, "Dietary Restrictions"),
			field("specialAccommodations", model.FieldTextarea, "Special Accommodations"),
		},
		Theme: Theme{"#0ea5e9", "#f0f9ff", "#0c4a6e", "#7dd3fc"},
	},
	{
		ID:          "job-application",
		Title:       "Job Application",
		Description: "A professional job application form with fields for experience and education.",
		Category:    "Business",
		Fields: []model.Field{
			required(field("firstName", model.FieldText, "First Name")),
			required(field("lastName", model.FieldText, "Last Name")),
			required(field("email", model.FieldEmail, "Email Address")),
			required(field("phone", model.FieldText, "Phone Number")),
			required(field("position", model.FieldText, "Position Applied For")),
			withHelp(field("experience", model.FieldTextarea, "Work Experience"),
				"List your relevant work experience, including company names, positions, and dates."),
			withHelp(field("education", model.FieldTextarea, "Education"),
				"List your educational background, including institutions, degrees, and dates."),
			required(withHelp(field("resume", model.FieldText, "Resume/CV Link"),
				"Link to your resume (PDF preferred)")),
			field("startDate", model.FieldDate, "Earliest Start Date"),
			field("referral", model.FieldText, "How did you hear about this position?"),
		},
		Theme: Theme{"#0f766e", "#f0fdfa", "#134e4a", "#5eead4"},
	},
	{
		ID:          "survey",
		Title:       "Customer Survey",
		Description: "A detailed survey to gather customer insights.",
		Category:    "Feedback",
		Fields: []model.Field{
			withOptions(field("age", model.FieldSelect, "Age Group"),
				"Under 18", "18-24", "25-34", "35-44", "45-54", "55-64", "65+"),
			withOptions(field("gender", model.FieldRadio, "Gender"),
				"Male", "Female", "Non-binary", "Prefer not to say"),
			withOptions(field("usageFrequency", model.FieldRadio, "How often do you use our product/service?"),
				"Daily", "Weekly", "Monthly", "Rarely", "First time"),
			required(withOptions(field("satisfaction", model.FieldRadio, "Overall satisfaction with our product/service"),
				"1", "2", "3", "4", "5")),
			withOptions(field("features", model.FieldCheckbox, "Which features do you value most?"),
				"Feature A", "Feature B", "Feature C", "Feature D", "Feature E"),
			field("improvements", model.FieldTextarea, "What improvements would you suggest?"),
			withHelp(withOptions(field("recommendationLikelihood", model.FieldSelect, "How likely are you to recommend us to others?"),
				"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10"),
				"Scale of 0-10, where 0 is not likely at all and 10 is extremely likely"),
		},
		Theme: Theme{"#7c3aed", "#f5f3ff", "#4c1d95", "#c4b5fd"},
	},
	{
		ID:          "subscription",
		Title:       "Newsletter Subscription",
		Description: "A simple form for newsletter subscriptions.",
		Category:    "Marketing",
		Fields: []model.Field{
			required(field("email", model.FieldEmail, "Email Address")),
			withPlaceholder(field("name", model.FieldText, "First Name"), "Optional"),
			withOptions(field("interests", model.FieldCheckbox, "Topics you're interested in"),
				"Product Updates", "Industry News", "Tips & Tutorials", "Company Announcements", "Events"),
		},
		Theme: Theme{"#db2777", "#fdf2f8", "#831843", "#f9a8d4"},
	},
}

func withHelp(f model.Field, help string) model.Field {
	f.HelpText = help
	return f
}

// All returns the full catalog.
func All() []Template {
	out := make([]Template, len(catalog))
	for i, t := range catalog {
		out[i] = cloneTemplate(t)
	}
	return out
}

// ByID looks a template up by its stable id.
func ByID(id string) (Template, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return cloneTemplate(t), true
		}
	}
	return Template{}, false
}

// cloneTemplate detaches the field and option slices so callers cannot
// mutate the catalog through a returned template.
func cloneTemplate(t Template) Template {
	fields := make([]model.Field, len(t.Fields))
	copy(fields, t.Fields)
	for i := range fields {
		if fields[i].Options != nil {
			fields[i].Options = append([]string(nil), fields[i].Options...)
		}
	}
	t.Fields = fields
	return t
}
