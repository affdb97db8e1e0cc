package email

import "fmt"

const bodyStyle = `font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;`
const headerStyle = `background-color: #800000; color: white; padding: 16px 24px;`

func wrap(heading, inner string) string {
	return fmt.Sprintf(`
		<html>
		<body>
			<div style="%s">
				<div style="%s"><h2 style="margin: 0;">%s</h2></div>
				<div style="padding: 16px 24px;">
					%s
					<p>Best regards,<br>The Registrar's Office</p>
				</div>
			</div>
		</body>
		</html>
	`, bodyStyle, headerStyle, heading, inner)
}

// StatusUpdateBody builds the email for a request status change
func StatusUpdateBody(studentName, requestLabel, status string) (subject, body string) {
	subject = "Your " + requestLabel + " Request Has Been Updated"
	body = wrap("Request Status Updated", fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>The status of your %s request has changed to <strong>%s</strong>.</p>
		<p>Log in to your account to view the full timeline of your request.</p>
	`, studentName, requestLabel, status))
	return subject, body
}

// RejectionBody builds the email for a rejected request
func RejectionBody(studentName, requestLabel, reason string) (subject, body string) {
	subject = "Your " + requestLabel + " Request Was Rejected"
	body = wrap("Request Rejected", fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>Unfortunately your %s request has been rejected.</p>
		<p><strong>Reason:</strong> %s</p>
		<p>You may submit a new request once the issue has been resolved.</p>
	`, studentName, requestLabel, reason))
	return subject, body
}

// AssignmentBody builds the email notifying staff of a new assignment
func AssignmentBody(staffName, requestLabel, studentName string) (subject, body string) {
	subject = "New " + requestLabel + " Request Assigned to You"
	body = wrap("New Assignment", fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>A %s request from <strong>%s</strong> has been assigned to you.</p>
		<p>Please log in to review and process the request.</p>
	`, staffName, requestLabel, studentName))
	return subject, body
}

// DocumentBody builds the email notifying a student that a document is available
func DocumentBody(studentName, requestLabel, filename string) (subject, body string) {
	subject = "A Document Was Added to Your " + requestLabel + " Request"
	body = wrap("Document Uploaded", fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>A document (<strong>%s</strong>) has been uploaded to your %s request.</p>
		<p>Log in to your account to download it.</p>
	`, studentName, filename, requestLabel))
	return subject, body
}

// AdminPasswordResetBody builds the email telling a user an administrator
// reset their password
func AdminPasswordResetBody(name string) (subject, body string) {
	subject = "Your Password Has Been Reset"
	body = wrap("Password Reset by Administrator", fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>Your password has been reset by an administrator.</p>
		<p>If you did not request this change, please contact the administrator immediately.</p>
	`, name))
	return subject, body
}

// PasswordResetBody builds the password reset email
func PasswordResetBody(name, resetURL string) (subject, body string) {
	subject = "Password Reset Request"
	body = wrap("Password Reset", fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>We received a request to reset your password. Click the button below to choose a new one:</p>
		<div style="text-align: center; margin: 30px 0;">
			<a href="%s" style="background-color: #800000; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Reset Password</a>
		</div>
		<p>This link will expire in 1 hour. If you did not request a reset, please ignore this email.</p>
	`, name, resetURL))
	return subject, body
}
