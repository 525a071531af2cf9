/*
Author: Amjad Yaseen
Email: ayaseen@redhat.com
Date: 2025-06-02

Entry point for the OpenShift monitor web application.
*/

package main

import "github.com/ayaseen/openshift-monitor-web/cmd"

func main() {
	cmd.Execute()
}
