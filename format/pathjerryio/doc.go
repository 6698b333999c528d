/*
Package pathjerryio implements the "path.jerryio v0.1" file format.

The format is line oriented. Each path starts with a marker line, followed
by one block per segment. Curves list their control points in meters and
their waypoints with target speeds; straight lines become a single move
instruction to the segment's end point, in inches:

	#PATH-START approach
	moveToPoint(23.622, 0, 2000);
	#POINTS-START
	0.6, 0
	0.9, 0
	1.2, 0.3
	1.2, 0.6
	#VELOCITIES-START
	0, 0, 0
	#PATH.JERRYIO-DATA {"appVersion":…}

A velocity block of "0, 0, 0" stands for a run at the default cruise speed
of 5.4, where only the final waypoint may deviate. The file ends with the
application's metadata in JSON; the format cannot be parsed back into paths
otherwise.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package pathjerryio
