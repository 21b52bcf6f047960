package service

import "fmt"

func welcomeEmailTemplate(role, dashboardURL, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s!", appName)

	intro := "You can now set personal health goals, keep your medical profile up to date and browse our health library."
	if role == "provider" {
		intro = "Your provider account is ready. Complete your profile so patients know who they are working with."
	}

	body := fmt.Sprintf(`Hi there,

%s

Open your dashboard:
%s

Best,
The %s Team`, intro, dashboardURL, appName)

	return subject, body
}

func accountDeletedEmailTemplate(name, appName string) (string, string) {
	if name == "" {
		name = "there"
	}

	subject := fmt.Sprintf("Your %s account has been deleted", appName)
	body := fmt.Sprintf(`Hi %s,

Your account, profile and health goals have been permanently deleted.

If this wasn't you, reply to this email right away.

Best,
The %s Team`, name, appName)

	return subject, body
}
