package jobs

import "resumatch/internal/types"

// seedJobs returns the built-in demo catalog used when no catalog file is
// configured.
func seedJobs() []types.JobPosting {
	return []types.JobPosting{
		{
			ID:           "1",
			Title:        "Software Engineer",
			Company:      "Tech Corp",
			Location:     "San Francisco, CA",
			Salary:       "$120,000 - $160,000",
			Description:  "We are looking for a skilled Software Engineer to join our team. You will be responsible for developing and maintaining web applications using modern technologies.",
			Requirements: "Bachelor's degree in Computer Science or related field. 3+ years of experience in software development. Proficiency in Python, JavaScript, React, and SQL. Experience with cloud platforms like AWS or Azure. Strong problem-solving skills and ability to work in a team environment.",
		},
		{
			ID:           "2",
			Title:        "Data Scientist",
			Company:      "DataTech Solutions",
			Location:     "New York, NY",
			Salary:       "$110,000 - $150,000",
			Description:  "Join our data science team to analyze large datasets and build predictive models. You will work with stakeholders to understand business requirements and translate them into data-driven solutions.",
			Requirements: "Master's degree in Data Science, Statistics, or related field. 2+ years of experience in data analysis and machine learning. Proficiency in Python, R, SQL, and machine learning libraries like scikit-learn, pandas, numpy. Experience with data visualization tools. Strong analytical and communication skills.",
		},
		{
			ID:           "3",
			Title:        "Frontend Developer",
			Company:      "Creative Agency",
			Location:     "Los Angeles, CA",
			Salary:       "$90,000 - $120,000",
			Description:  "We are seeking a talented Frontend Developer to create engaging user interfaces and experiences. You will work closely with designers and backend developers to bring mockups to life.",
			Requirements: "Bachelor's degree or equivalent experience. 2+ years of frontend development experience. Expert knowledge of HTML, CSS, JavaScript, and React or Vue.js. Experience with responsive design and cross-browser compatibility. Familiarity with version control systems like Git. Strong attention to detail and design sense.",
		},
		{
			ID:           "4",
			Title:        "DevOps Engineer",
			Company:      "CloudFirst Inc",
			Location:     "Seattle, WA",
			Salary:       "$130,000 - $170,000",
			Description:  "We are looking for a DevOps Engineer to help streamline our development and deployment processes. You will be responsible for maintaining our cloud infrastructure and implementing CI/CD pipelines.",
			Requirements: "Bachelor's degree in Computer Science or related field. 3+ years of DevOps experience. Proficiency with AWS, Docker, Kubernetes, and Terraform. Experience with CI/CD tools like Jenkins or GitLab. Strong knowledge of Linux systems and shell scripting. Understanding of networking and security best practices.",
		},
		{
			ID:           "5",
			Title:        "Product Manager",
			Company:      "Innovation Labs",
			Location:     "Austin, TX",
			Salary:       "$100,000 - $140,000",
			Description:  "We need a Product Manager to drive the development of our consumer-facing products. You will work with cross-functional teams to define product strategy and roadmap.",
			Requirements: "Bachelor's degree in Business, Engineering, or related field. 3+ years of product management experience. Strong analytical and problem-solving skills. Experience with agile development methodologies. Excellent communication and leadership abilities. Understanding of user experience design principles.",
		},
		{
			ID:           "6",
			Title:        "UX/UI Designer",
			Company:      "Design Studio",
			Location:     "Portland, OR",
			Salary:       "$80,000 - $110,000",
			Description:  "Join our design team to create intuitive and beautiful user experiences. You will be responsible for the entire design process from user research to final implementation.",
			Requirements: "Bachelor's degree in Design, HCI, or related field. 2+ years of UX/UI design experience. Proficiency in design tools like Figma, Sketch, or Adobe Creative Suite. Strong portfolio demonstrating user-centered design process. Experience with user research and usability testing. Understanding of frontend technologies and design systems.",
		},
	}
}
