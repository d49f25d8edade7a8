package registry

// Descriptions double as usage guides for the calling agent, so they carry
// example syntax. Nothing in this package parses them.

const (
	renderPromptDescription   = "Generate a diagram using AI from a natural language prompt, existing code, infrastructure configuration, or other diagram languages. Best for when you want AI to create the diagram code for you."
	renderElementsDescription = "Render multiple diagram elements. Advanced use case for rendering multiple diagrams at once."
)

const sequenceDiagramDescription = `Render a sequence diagram. Use Eraser's sequence diagram syntax.

Example syntax:
` + "```" + `
title Authentication Flow
autoNumber on

Client [icon: monitor, color: gray]
Server [icon: server, color: blue]
Service [icon: tool, color: green]

Client > Server: Data request
activate Server
Server <> Service: Service request

loop [label: until success, color: green] {
  Service > Service: Check availability
}

Server - Service: Data processing
Server --> Client: Data response
deactivate Server
` + "```"

const entityRelationshipDescription = `Render an entity-relationship diagram. Use Eraser's ERD syntax.

Example syntax:
` + "```" + `
title E-commerce Database

// Define tables with columns
users [icon: user, color: blue] {
  id int pk
  email string
  name string
  created_at timestamp
}

orders [icon: shopping-cart, color: green] {
  id int pk
  user_id int
  total decimal
  status string
  created_at timestamp
}

products [icon: box, color: orange] {
  id int pk
  name string
  price decimal
  stock int
}

order_items [icon: list] {
  order_id int pk
  product_id int pk
  quantity int
  price decimal
}

// Relationships
users.id < orders.user_id
orders.id < order_items.order_id
products.id < order_items.product_id
` + "```"

const cloudArchitectureDescription = `Render a cloud architecture diagram. Use Eraser's cloud architecture syntax.

Example syntax:
` + "```" + `
title AWS Microservices Architecture

// Groups with cloud provider icons
AWS Cloud [icon: aws] {
  VPC [icon: aws-vpc] {
    Public Subnet {
      ALB [icon: aws-elb]
      NAT Gateway [icon: aws-nat-gateway]
    }
    Private Subnet {
      ECS Cluster [icon: aws-ecs] {
        API Service [icon: aws-lambda]
        Worker Service [icon: aws-lambda]
      }
      RDS [icon: aws-rds]
      ElastiCache [icon: aws-elasticache]
    }
  }
  S3 [icon: aws-s3]
  CloudFront [icon: aws-cloudfront]
}

Users [icon: users]

// Connections
Users > CloudFront
CloudFront > ALB
ALB > API Service
API Service > RDS
API Service > ElastiCache
Worker Service > S3
` + "```"

const flowchartDescription = `Render a flowchart diagram. Use Eraser's flowchart syntax. Prefer horizontal layout (direction right) unless the user wants a vertical diagram.

Example syntax:
` + "```" + `
title User Registration Flow
direction right

// Nodes with shapes and icons
Start [shape: oval, icon: play]
Enter Details [icon: edit]
Valid Email? [shape: diamond, icon: help-circle]
Send Verification [icon: mail]
Email Verified? [shape: diamond]
Create Account [icon: user-plus, color: green]
Show Error [icon: alert-triangle, color: red]
End [shape: oval, icon: check]

// Groups
Validation [color: blue] {
  Check Password Strength [icon: lock]
  Password OK? [shape: diamond]
}

// Connections with labels
Start > Enter Details
Enter Details > Valid Email?
Valid Email? > Send Verification: Yes
Valid Email? > Show Error: No
Send Verification > Email Verified?
Email Verified? > Create Account: Yes
Email Verified? > Show Error: No
Create Account > End
Show Error > Enter Details
` + "```"

const bpmnDescription = `Render a BPMN (Business Process Model and Notation) diagram. Use Eraser's BPMN syntax.

Example syntax:
` + "```" + `
title Order Fulfillment Process

// Swimlanes (pools)
Customer [color: blue] {
  Place Order [type: event, icon: shopping-cart]
  Receive Confirmation [type: event, icon: mail]
  Receive Package [type: event, icon: package]
}

Sales [color: green] {
  Process Order [icon: clipboard]
  Check Inventory [icon: database]
  In Stock? [type: gateway, icon: help-circle]
  Create Backorder [icon: clock]
  Confirm Order [icon: check]
}

Warehouse [color: orange] {
  Pick Items [icon: box]
  Pack Order [icon: package]
  Ship Order [icon: truck]
}

// Flow connections (use --> for message flows between pools)
Place Order --> Process Order: Order details
Process Order > Check Inventory
Check Inventory > In Stock?
In Stock? > Confirm Order: Yes
In Stock? > Create Backorder: No
Confirm Order --> Receive Confirmation: Confirmation email
Confirm Order > Pick Items
Pick Items > Pack Order
Pack Order > Ship Order
Ship Order --> Receive Package: Delivery
` + "```"
