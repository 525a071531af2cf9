/*
Author: Amjad Yaseen
Email: ayaseen@redhat.com
Date: 2025-06-02

This file provides the application version information embedded during build time.
*/

package version

// Version is set during build time via ldflags
var Version = "dev"
